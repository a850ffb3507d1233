package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips JSON responses. PDF exports are already compressed and
// /metrics is left to the scraper's own negotiation.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{`^/api/quotes/[^/]+/export$`}),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	)
}
