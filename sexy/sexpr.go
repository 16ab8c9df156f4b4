package sexy

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

// Node is a parsed s-expression.
type Node struct {
	Type NodeType

	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

// String prints n in canonical form. Parse(n.String()) yields an equal node.
func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// Head returns the symbol at the start of a list, or "" if n is not a list
// starting with a symbol.
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses a single datum. Anything after it other than whitespace and
// comments is an error.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if p.lexer.err != nil {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, p.lexer.err
	}
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("offset %d: expected EOF but got %s", p.currentToken.Position, p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.nextToken()
		return NewInteger(tok.Value), nil
	case tokenEllipsis:
		p.nextToken()
		return NewEllipsis(), nil
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.Position, tok.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	start := p.currentToken.Position
	items := []*Node{}
	p.nextToken() // consume '('

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("offset %d: unclosed '('", start)
	}
	p.nextToken() // consume ')'

	return NewList(items...), nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

type lexer struct {
	input    string
	position int // byte offset of current
	next     int // byte offset just past current
	current  rune
	err      error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	l.position = l.next
	if l.next >= len(l.input) {
		l.current = 0
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.current = r
	l.next += width
}

func (l *lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// invalidUTF8 reports whether current is a byte that does not start a valid
// UTF-8 sequence.
func (l *lexer) invalidUTF8() bool {
	return l.current == utf8.RuneError && l.next-l.position == 1
}

// fail records the first lexer error and ends the token stream.
func (l *lexer) fail(pos int, format string, args ...any) token {
	if l.err == nil {
		l.err = fmt.Errorf("offset %d: %s", pos, fmt.Sprintf(format, args...))
	}
	return token{Type: tokenEOF, Position: pos}
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	start := l.position
	for l.current != 0 && pred(l.current) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *lexer) readString() (string, error) {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.invalidUTF8() {
			return "", fmt.Errorf("invalid UTF-8 in string")
		}
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"', '\\':
				sb.WriteRune(l.current)
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			sb.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return sb.String(), nil
}

func (l *lexer) nextToken() token {
	for {
		for unicode.IsSpace(l.current) {
			l.readChar()
		}

		pos := l.position

		switch l.current {
		case 0:
			return token{Type: tokenEOF, Position: pos}
		case ';':
			l.readWhile(func(r rune) bool { return r != '\n' })
			continue
		case '(':
			l.readChar()
			return token{Type: tokenLParen, Value: "(", Position: pos}
		case ')':
			l.readChar()
			return token{Type: tokenRParen, Value: ")", Position: pos}
		case '"':
			str, err := l.readString()
			if err != nil {
				return l.fail(pos, "%v", err)
			}
			return token{Type: tokenString, Value: str, Position: pos}
		case '.':
			if l.peekChar() == '.' {
				l.readChar()
				if l.peekChar() == '.' {
					l.readChar()
					l.readChar()
					return token{Type: tokenEllipsis, Value: "...", Position: pos}
				}
			}
			return l.fail(pos, "unexpected character '.'")
		}

		switch {
		case isDigit(l.current),
			(l.current == '+' || l.current == '-') && isDigit(l.peekChar()):
			l.readChar()
			l.readWhile(isDigit)
			if isSymbolChar(l.current) {
				l.readWhile(isSymbolChar)
				return l.fail(pos, "invalid integer %s", l.input[pos:l.position])
			}
			return token{Type: tokenInteger, Value: l.input[pos:l.position], Position: pos}
		case isSymbolChar(l.current):
			symbol := l.readWhile(isSymbolChar)
			return token{Type: tokenSymbol, Value: symbol, Position: pos}
		case l.invalidUTF8():
			return l.fail(pos, "invalid UTF-8")
		default:
			return l.fail(pos, "unexpected character '%c'", l.current)
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSymbolChar(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune("-_+*/<>=!?", r)
}
