package translit

import (
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
)

// ErrInvalidInputKind is returned when a conversion receives a value that is
// not text. It is the only error the engine produces.
var ErrInvalidInputKind = errors.New("invalid input kind")

// BatchResult is one element of a tolerant batch conversion.
type BatchResult struct {
	Index  int
	Output string
	Err    error
}

// textOf accepts the kinds of value that count as text.
func textOf(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case []rune:
		return string(t), nil
	}
	err := errors.Wrapf(ErrInvalidInputKind, "%T is not text", v)
	return "", errors.WithHint(err, "pass a string, []byte or []rune")
}

// ConvertValue converts a dynamically typed value, failing with
// ErrInvalidInputKind when it is not text.
func ConvertValue(v any) (string, error) {
	return std.ConvertValue(v)
}

// ConvertValueWithTrace is ConvertWithTrace for dynamically typed values.
func ConvertValueWithTrace(v any) (string, []TraceEntry, error) {
	return std.ConvertValueWithTrace(v)
}

// BatchConvert converts each value in order and stops at the first value
// that is not text.
func BatchConvert(values []any) ([]string, error) {
	return std.BatchConvert(values)
}

// BatchConvertStrings converts each text in order.
func BatchConvertStrings(texts []string) []string {
	return std.BatchConvertStrings(texts)
}

// BatchConvertTolerant converts every value and reports failures per element.
func BatchConvertTolerant(values []any) []BatchResult {
	return std.BatchConvertTolerant(values)
}

// ConvertValue converts a dynamically typed value.
func (c *Converter) ConvertValue(v any) (string, error) {
	text, err := textOf(v)
	if err != nil {
		return "", err
	}
	return c.Convert(text), nil
}

// ConvertValueWithTrace converts a dynamically typed value with a trace.
func (c *Converter) ConvertValueWithTrace(v any) (string, []TraceEntry, error) {
	text, err := textOf(v)
	if err != nil {
		return "", nil, err
	}
	out, trace := c.ConvertWithTrace(text)
	return out, trace, nil
}

// BatchConvert is fail-fast: the error names the index of the offending value
// and no partial output is returned.
func (c *Converter) BatchConvert(values []any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, err := c.ConvertValue(v)
		if err != nil {
			c.logger.Debugw("Batch conversion aborted",
				"index", i,
				logger.FieldBatchSize, len(values),
				logger.FieldError, err)
			return nil, errors.Wrapf(err, "batch item %d", i)
		}
		out[i] = s
	}
	return out, nil
}

// BatchConvertStrings converts each text in order. It cannot fail.
func (c *Converter) BatchConvertStrings(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = c.Convert(t)
	}
	return out
}

// BatchConvertTolerant returns one result per value, in order. Values that
// are not text carry ErrInvalidInputKind in Err and an empty Output.
func (c *Converter) BatchConvertTolerant(values []any) []BatchResult {
	results := make([]BatchResult, len(values))
	failed := 0
	for i, v := range values {
		s, err := c.ConvertValue(v)
		results[i] = BatchResult{Index: i, Output: s, Err: err}
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		c.logger.Debugw("Batch conversion finished with failures",
			"failed", failed,
			logger.FieldBatchSize, len(values))
	}
	return results
}
