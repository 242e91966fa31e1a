package xmltree

import (
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Document is the result of a parse: the root element and, if the source
// started with one, the header line such as `<?xml version="1.0"?>`.
type Document struct {
	Root   *Node
	Header string
}

type ParseOption func(*Parser)

func WithLogger(logger *zap.Logger) ParseOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser builds node trees from markup text. A Parser keeps no state between
// calls.
type Parser struct {
	logger *zap.Logger
}

func NewParser(opts ...ParseOption) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the whole of r and parses it.
func Parse(r io.Reader, opts ...ParseOption) (*Document, error) {
	return NewParser(opts...).Parse(r)
}

func ParseString(src string, opts ...ParseOption) (*Document, error) {
	return NewParser(opts...).ParseString(src)
}

func (p *Parser) Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return p.ParseString(string(raw))
}

// ParseString parses src. Structural errors abort the parse and no partial
// tree is returned.
func (p *Parser) ParseString(src string) (*Document, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	b := &treeBuilder{tokens: tokens, logger: p.logger}
	doc := &Document{}
	for b.more() {
		tok := b.next()
		switch tok.Kind {
		case TokenHeader:
			if doc.Header == "" {
				doc.Header = "<" + tok.Body + ">"
				p.logger.Debug("document header", zap.String("header", doc.Header))
			}
		case TokenOpen, TokenSelfClosing:
			root, err := b.build(tok)
			if err != nil {
				return nil, err
			}
			b.skipTrailing()
			doc.Root = root
			return doc, nil
		case TokenClose:
			return nil, errors.Wrapf(ErrMismatchedTag, "offset %d: </%s> without open tag", tok.Offset, tok.Body)
		default:
			b.drop(tok)
		}
	}
	return nil, ErrEmptyDocument
}

type treeBuilder struct {
	tokens []Token
	pos    int
	logger *zap.Logger
}

func (b *treeBuilder) more() bool {
	return b.pos < len(b.tokens)
}

func (b *treeBuilder) next() Token {
	tok := b.tokens[b.pos]
	b.pos++
	return tok
}

func (b *treeBuilder) drop(tok Token) {
	b.logger.Debug("dropped token",
		zap.Stringer("kind", tok.Kind),
		zap.Int("offset", tok.Offset))
}

func (b *treeBuilder) skipTrailing() {
	for b.more() {
		tok := b.next()
		b.logger.Debug("ignored token after root",
			zap.Stringer("kind", tok.Kind),
			zap.Int("offset", tok.Offset),
			zap.String("body", tok.Body))
	}
}

// build turns an open or self-closing token into a node and, for open tags,
// consumes tokens up to and including the matching close tag.
func (b *treeBuilder) build(tok Token) (*Node, error) {
	name, rest := splitFirst(tok.Body)
	attrs, err := parseAttrs(rest)
	if err != nil {
		return nil, errors.WithMessagef(err, "offset %d: <%s>", tok.Offset, name)
	}
	node := NewNode(name)
	node.attrs = attrs
	if tok.Kind == TokenSelfClosing {
		node.selfClosing = true
		node.closed = true
		return node, nil
	}
	for b.more() {
		next := b.next()
		switch next.Kind {
		case TokenText:
			if node.data != "" {
				node.data += " "
			}
			node.data += next.Body
		case TokenOpen, TokenSelfClosing:
			child, err := b.build(next)
			if err != nil {
				return nil, err
			}
			node.link(child, nil)
		case TokenClose:
			if next.Body != name {
				return nil, errors.Wrapf(ErrMismatchedTag, "offset %d: </%s> closes <%s>", next.Offset, next.Body, name)
			}
			node.closed = true
			return node, nil
		default:
			b.drop(next)
		}
	}
	return nil, errors.Wrapf(ErrUnterminatedTag, "offset %d: <%s> is never closed", tok.Offset, name)
}

// parseAttrs reads key=value pairs. Values may be quoted with either quote
// character; a key without '=' gets an empty value. Later duplicates win.
func parseAttrs(s string) (Attrs, error) {
	var attrs Attrs
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return attrs, nil
		}
		keyEnd := strings.IndexFunc(s, func(r rune) bool {
			return r == '=' || unicode.IsSpace(r)
		})
		if keyEnd < 0 {
			attrs.Set(s, "")
			return attrs, nil
		}
		if keyEnd == 0 {
			return nil, errors.Wrapf(ErrMalformedTag, "attribute without key near %q", s)
		}
		key := s[:keyEnd]
		s = strings.TrimLeftFunc(s[keyEnd:], unicode.IsSpace)
		if !strings.HasPrefix(s, "=") {
			attrs.Set(key, "")
			continue
		}
		s = strings.TrimLeftFunc(s[1:], unicode.IsSpace)
		var value string
		if s != "" && (s[0] == '"' || s[0] == '\'') {
			end := strings.IndexByte(s[1:], s[0])
			if end < 0 {
				return nil, errors.Wrapf(ErrMalformedTag, "unterminated quote in attribute %q", key)
			}
			value = s[1 : end+1]
			s = s[end+2:]
		} else {
			end := strings.IndexFunc(s, unicode.IsSpace)
			if end < 0 {
				end = len(s)
			}
			value = s[:end]
			s = s[end:]
		}
		attrs.Set(key, value)
	}
}
