package rules

import (
	"fmt"
	"regexp"

	"importpipe/internal/config"
)

// Compile turns one rule description into its executable form. Unknown kinds
// and invalid regular expressions are configuration errors; data-quality
// problems never surface here.
func Compile(rc config.Rule) (Rule, error) {
	opt := rc.Options
	if opt == nil {
		opt = config.Options{}
	}

	switch rc.Kind {
	case "trim":
		return Trim{}, nil
	case "collapse_whitespace":
		return CollapseWhitespace{}, nil
	case "lowercase":
		return Lowercase{}, nil
	case "uppercase":
		return Uppercase{}, nil
	case "title_case":
		return TitleCase{}, nil
	case "empty_to_null":
		return EmptyToNull{}, nil
	case "skip_if_empty":
		return SkipIfEmpty{}, nil
	case "null_to_default":
		return NullToDefault{Default: opt.Any("default")}, nil
	case "validate_email":
		return ValidateEmail{OnInvalid: onInvalid(opt)}, nil
	case "validate_phone":
		return ValidatePhone{
			OnInvalid: onInvalid(opt),
			Format:    opt.String("format", ""),
		}, nil
	case "validate_url":
		return ValidateURL{OnInvalid: onInvalid(opt)}, nil
	case "parse_number":
		return ParseNumber{
			RemoveChars: opt.String("remove_chars", DefaultRemoveChars),
		}, nil
	case "parse_boolean":
		return NewParseBoolean(
			opt.StringSlice("true_values"),
			opt.StringSlice("false_values"),
		), nil
	case "parse_date":
		return ParseDate{Format: opt.String("format", "")}, nil
	case "parse_percentage":
		return ParsePercentage{AsDecimal: opt.Bool("as_decimal", false)}, nil
	case "find_replace":
		fr := FindReplace{
			Find:    opt.String("find", ""),
			Replace: opt.String("replace", ""),
		}
		if opt.Bool("regex", false) {
			re, err := regexp.Compile(fr.Find)
			if err != nil {
				return nil, fmt.Errorf("find_replace pattern %q: %w", fr.Find, err)
			}
			fr.re = re
		}
		return fr, nil
	case "split":
		return Split{
			Delimiter: opt.String("delimiter", ","),
			TakeIndex: opt.Int("take_index", 0),
		}, nil
	case "prefix":
		return Prefix{Value: opt.String("value", "")}, nil
	case "suffix":
		return Suffix{Value: opt.String("value", "")}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", rc.Kind)
	}
}

// CompileChain compiles an ordered rule list into a Chain, preserving order.
func CompileChain(rcs []config.Rule) (Chain, error) {
	out := make(Chain, 0, len(rcs))
	for i, rc := range rcs {
		r, err := Compile(rc)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// onInvalid reads the shared on_invalid option; validators default to skip,
// matching the suggested configurations.
func onInvalid(opt config.Options) OnInvalid {
	return OnInvalid(opt.String("on_invalid", string(InvalidSkip)))
}
