package timeseries

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParamKind discriminates the closed set of parameter value kinds.
type ParamKind uint8

const (
	ParamKindDecimal ParamKind = iota
	ParamKindInt
	ParamKindString
	ParamKindInstant
	ParamKindBool
)

func (k ParamKind) String() string {
	switch k {
	case ParamKindDecimal:
		return "decimal"
	case ParamKindInt:
		return "int"
	case ParamKindString:
		return "string"
	case ParamKindInstant:
		return "instant"
	case ParamKindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParamValue is a tagged union over the parameter value kinds. Accessors
// return false when the value holds a different kind, so a misconfigured
// parameter surfaces at the read site instead of being coerced.
type ParamValue struct {
	kind    ParamKind
	dec     decimal.Decimal
	num     int64
	str     string
	instant time.Time
	flag    bool
}

func DecimalParam(v decimal.Decimal) ParamValue {
	return ParamValue{kind: ParamKindDecimal, dec: v}
}

func IntParam(v int64) ParamValue {
	return ParamValue{kind: ParamKindInt, num: v}
}

func StringParam(v string) ParamValue {
	return ParamValue{kind: ParamKindString, str: v}
}

func InstantParam(v time.Time) ParamValue {
	return ParamValue{kind: ParamKindInstant, instant: v}
}

func BoolParam(v bool) ParamValue {
	return ParamValue{kind: ParamKindBool, flag: v}
}

func (v ParamValue) Kind() ParamKind { return v.kind }

func (v ParamValue) Decimal() (decimal.Decimal, bool) {
	return v.dec, v.kind == ParamKindDecimal
}

func (v ParamValue) Int() (int64, bool) {
	return v.num, v.kind == ParamKindInt
}

func (v ParamValue) Str() (string, bool) {
	return v.str, v.kind == ParamKindString
}

func (v ParamValue) Instant() (time.Time, bool) {
	return v.instant, v.kind == ParamKindInstant
}

func (v ParamValue) Bool() (bool, bool) {
	return v.flag, v.kind == ParamKindBool
}

func (v ParamValue) String() string {
	switch v.kind {
	case ParamKindDecimal:
		return v.dec.String()
	case ParamKindInt:
		return decimal.NewFromInt(v.num).String()
	case ParamKindString:
		return v.str
	case ParamKindInstant:
		return v.instant.Format(time.RFC3339Nano)
	case ParamKindBool:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return "unknown"
	}
}
