package logging

import (
	"regexp"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

func requestFields(traceparent, requestID string) []zap.Field {
	var fields []zap.Field
	if m := traceHeaderRe.FindStringSubmatch(traceparent); len(m) == 5 {
		fields = append(fields,
			zap.String("traceId", m[2]),
			zap.String("spanId", m[3]),
			zap.Bool("traceSampled", m[4] == "01"),
		)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	return fields
}
