package xmltree

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenSelfClosing
	TokenClose
	TokenComment
	TokenHeader
	// TokenDeclaration covers <!DOCTYPE ...> and processing instructions
	// other than the document header.
	TokenDeclaration
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenOpen:
		return "open"
	case TokenSelfClosing:
		return "self-closing"
	case TokenClose:
		return "close"
	case TokenComment:
		return "comment"
	case TokenHeader:
		return "header"
	case TokenDeclaration:
		return "declaration"
	default:
		return "unknown"
	}
}

// Token is either a tag body (the text between '<' and '>') or a text run.
type Token struct {
	Kind TokenKind
	// Body is the condensed text of a text run, the tag name of a close tag,
	// or the raw tag body without delimiters and trailing '/'.
	Body string
	// Offset is the byte offset of the token in the source.
	Offset int
}

// Name returns the tag name of an open, self-closing or close token.
func (t Token) Name() string {
	return splitOne(t.Body)
}

var headerPattern = regexp.MustCompile(`^\?xml(\s[^?]*)?\?$`)

// Tokenize splits src into tag and text tokens. Whitespace-only text runs are
// dropped; the others are condensed and stripped.
func Tokenize(src string) ([]Token, error) {
	tokens := make([]Token, 0)
	pos := 0
	for pos < len(src) {
		lt := strings.IndexByte(src[pos:], '<')
		if lt < 0 {
			tokens = appendText(tokens, src[pos:], pos)
			break
		}
		tokens = appendText(tokens, src[pos:pos+lt], pos)
		start := pos + lt
		if strings.HasPrefix(src[start:], "<!--") {
			end := strings.Index(src[start+4:], "-->")
			if end < 0 {
				return nil, errors.Wrapf(ErrUnterminatedTag, "offset %d: comment is never closed", start)
			}
			closeAt := start + 4 + end
			tokens = append(tokens, Token{Kind: TokenComment, Body: src[start+1 : closeAt+2], Offset: start})
			pos = closeAt + 3
			continue
		}
		end := tagEnd(src, start+1)
		if end < 0 {
			return nil, errors.Wrapf(ErrUnterminatedTag, "offset %d: missing '>'", start)
		}
		tok, err := classify(src[start+1:end], start)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		pos = end + 1
	}
	return tokens, nil
}

func appendText(tokens []Token, text string, offset int) []Token {
	text = strip(condense(text))
	if text == "" {
		return tokens
	}
	return append(tokens, Token{Kind: TokenText, Body: text, Offset: offset})
}

// tagEnd returns the index of the '>' closing the tag that starts at from,
// skipping quoted attribute values.
func tagEnd(src string, from int) int {
	var quote byte
	for idx := from; idx < len(src); idx++ {
		c := src[idx]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return idx
		}
	}
	return -1
}

func classify(raw string, offset int) (Token, error) {
	body := strip(raw)
	tok := Token{Body: body, Offset: offset}
	switch {
	case body == "" || body == "/":
		return tok, errors.Wrapf(ErrMalformedTag, "offset %d: empty tag", offset)
	case strings.HasPrefix(body, "/"):
		fields := split(body[1:])
		if len(fields) != 1 {
			return tok, errors.Wrapf(ErrMalformedTag, "offset %d: close tag <%s>", offset, body)
		}
		tok.Kind = TokenClose
		tok.Body = fields[0]
	case strings.HasPrefix(body, "!--"):
		tok.Kind = TokenComment
	case strings.HasPrefix(body, "!"):
		tok.Kind = TokenDeclaration
	case strings.HasPrefix(body, "?"):
		tok.Kind = TokenDeclaration
		if headerPattern.MatchString(body) {
			tok.Kind = TokenHeader
		}
	case strings.HasSuffix(body, "/"):
		tok.Kind = TokenSelfClosing
		tok.Body = strip(body[:len(body)-1])
	default:
		tok.Kind = TokenOpen
	}
	if (tok.Kind == TokenOpen || tok.Kind == TokenSelfClosing) && !startsWithName(tok.Body) {
		return tok, errors.Wrapf(ErrMalformedTag, "offset %d: <%s>", offset, body)
	}
	return tok, nil
}

func startsWithName(body string) bool {
	if body == "" {
		return false
	}
	switch body[0] {
	case '=', '"', '\'', '/', '<':
		return false
	}
	return !strings.ContainsAny(splitOne(body), `="'`)
}
