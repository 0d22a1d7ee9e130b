package nextract

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ParseLiteral parses a JavaScript object literal into Go values
// (map[string]any, []any, string, float64, bool, nil). It accepts the
// relaxed syntax commonly found in inlined scripts: unquoted keys,
// single-quoted strings, trailing commas, comments, hex numbers, and the
// undefined/NaN/Infinity words. Input is never executed.
func ParseLiteral(text string) (any, error) {
	p := &literalParser{src: text}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected token at offset %d", p.pos)
	}
	return v, nil
}

// ScanJSString decodes the JavaScript string literal at the start of src.
// It returns the decoded value and the number of bytes consumed, including
// both quotes.
func ScanJSString(src string) (string, int, error) {
	if src == "" || (src[0] != '"' && src[0] != '\'') {
		return "", 0, errors.New("expected string literal")
	}
	p := &literalParser{src: src}
	s, err := p.parseString(src[0])
	if err != nil {
		return "", 0, err
	}
	return s, p.pos, nil
}

// literalParser is a recursive-descent parser over a relaxed
// JavaScript-object-literal grammar.
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		case c == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *literalParser) parseValue() (any, error) {
	if p.pos >= len(p.src) {
		return nil, errors.New("unexpected end of input")
	}
	switch c := p.src[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"' || c == '\'':
		return p.parseString(c)
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return p.parseWord()
	}
}

func (p *literalParser) parseObject() (any, error) {
	p.pos++ // consume '{'
	obj := make(map[string]any)
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, fmt.Errorf("expected ':' after key %q at offset %d", key, p.pos)
		}
		p.pos++
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = val
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, errors.New("unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			// trailing comma
			if p.pos < len(p.src) && p.src[p.pos] == '}' {
				p.pos++
				return obj, nil
			}
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, fmt.Errorf("unexpected token %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *literalParser) parseKey() (string, error) {
	if p.pos >= len(p.src) {
		return "", errors.New("unexpected end of input")
	}
	if c := p.src[p.pos]; c == '"' || c == '\'' {
		return p.parseString(c)
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected object key at offset %d", start)
	}
	return p.src[start:p.pos], nil
}

func (p *literalParser) parseArray() (any, error) {
	p.pos++ // consume '['
	arr := []any{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, errors.New("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			// trailing comma
			if p.pos < len(p.src) && p.src[p.pos] == ']' {
				p.pos++
				return arr, nil
			}
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected token %q at offset %d", p.src[p.pos], p.pos)
		}
	}
}

func (p *literalParser) parseString(quote byte) (string, error) {
	p.pos++ // consume opening quote
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", errors.New("unterminated string")
			}
			e := p.src[p.pos+1]
			switch e {
			case 'n':
				sb.WriteByte('\n')
				p.pos += 2
			case 't':
				sb.WriteByte('\t')
				p.pos += 2
			case 'r':
				sb.WriteByte('\r')
				p.pos += 2
			case 'b':
				sb.WriteByte('\b')
				p.pos += 2
			case 'f':
				sb.WriteByte('\f')
				p.pos += 2
			case 'v':
				sb.WriteByte('\v')
				p.pos += 2
			case '0':
				sb.WriteByte(0)
				p.pos += 2
			case '\n':
				// line continuation
				p.pos += 2
			case 'x':
				if p.pos+4 > len(p.src) {
					return "", errors.New("invalid \\x escape")
				}
				v, err := strconv.ParseUint(p.src[p.pos+2:p.pos+4], 16, 16)
				if err != nil {
					return "", errors.New("invalid \\x escape")
				}
				sb.WriteRune(rune(v))
				p.pos += 4
			case 'u':
				r, n, err := p.unicodeEscape(p.pos)
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
				p.pos += n
			default:
				sb.WriteByte(e)
				p.pos += 2
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", errors.New("unterminated string")
}

// unicodeEscape decodes the \uXXXX escape starting at off (pointing at the
// backslash), combining surrogate pairs. It returns the rune and the total
// number of bytes consumed.
func (p *literalParser) unicodeEscape(off int) (rune, int, error) {
	if off+6 > len(p.src) {
		return 0, 0, errors.New("invalid \\u escape")
	}
	v, err := strconv.ParseUint(p.src[off+2:off+6], 16, 32)
	if err != nil {
		return 0, 0, errors.New("invalid \\u escape")
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 6, nil
	}
	// high surrogate: look for the low half
	if off+12 <= len(p.src) && p.src[off+6] == '\\' && p.src[off+7] == 'u' {
		v2, err := strconv.ParseUint(p.src[off+8:off+12], 16, 32)
		if err == nil {
			if combined := utf16.DecodeRune(r, rune(v2)); combined != 0xFFFD {
				return combined, 12, nil
			}
		}
	}
	return 0xFFFD, 6, nil
}

func (p *literalParser) parseNumber() (any, error) {
	start := p.pos
	sign := 1.0
	if c := p.src[p.pos]; c == '+' || c == '-' {
		if c == '-' {
			sign = -1.0
		}
		p.pos++
	}
	if strings.HasPrefix(p.src[p.pos:], "Infinity") {
		p.pos += len("Infinity")
		return math.Inf(int(sign)), nil
	}
	if p.pos+1 < len(p.src) && p.src[p.pos] == '0' && (p.src[p.pos+1] == 'x' || p.src[p.pos+1] == 'X') {
		p.pos += 2
		ds := p.pos
		for p.pos < len(p.src) && isHexDigit(p.src[p.pos]) {
			p.pos++
		}
		v, err := strconv.ParseUint(p.src[ds:p.pos], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number at offset %d", start)
		}
		return sign * float64(v), nil
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' {
			p.pos++
			continue
		}
		if (c == '+' || c == '-') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
			p.pos++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", p.src[start:p.pos])
	}
	return f, nil
}

func (p *literalParser) parseWord() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}
	switch p.src[start:p.pos] {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	}
	return nil, fmt.Errorf("unexpected token at offset %d", start)
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
