package choco

import "github.com/google/uuid"

const (
	cabinetOrigin = "https://cabinet.rahmet.biz"

	HeaderFingerprint    = "X-Fingerprint"
	HeaderIdempotencyKey = "X-Idempotency-Key"
)

// browserHeaders mimic the web cabinet. Accept-Encoding is left to the
// transport so gzip bodies are decoded transparently.
var browserHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en,en-US;q=0.9,ru;q=0.8",
	"Dnt":                "1",
	"Origin":             cabinetOrigin,
	"Referer":            cabinetOrigin + "/",
	"Sec-Ch-Ua":          `"Chromium";v="128", "Not;A=Brand";v="24", "Google Chrome";v="128"`,
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": `"macOS"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "cross-site",
	"Sec-Gpc":            "1",
	"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"X-Language":         "ru",
}

// requestHeaders returns the per-call identifiers; both are fresh v4 UUIDs.
func requestHeaders() map[string]string {
	return map[string]string{
		HeaderFingerprint:    uuid.NewString(),
		HeaderIdempotencyKey: uuid.NewString(),
	}
}
