// Package parser implements the Parser contract of spec.md §6: given a raw
// input line it returns an ast.Command or a human-readable error.
//
// Grammar (informal, no newlines — one line in, one Command out):
//
//	list       := and_or ( (';'|'&') and_or? )*
//	and_or     := pipeline ( ('&&'|'||') pipeline )*
//	pipeline   := bang_cmd ( '|' bang_cmd )*
//	bang_cmd   := '!'? compound
//	compound   := simple | subshell | if_cmd | while_cmd | until_cmd
//	            | for_cmd | case_cmd | fn_def
//	subshell   := '(' list ')'
//	if_cmd     := 'if' and_or ';'? 'then' list
//	              (';'? 'elif' and_or ';'? 'then' list)*
//	              (';'? 'else' list)? ';'? 'fi'
//	while_cmd  := 'while' and_or ';'? 'do' list ';'? 'done'
//	until_cmd  := 'until' and_or ';'? 'do' list ';'? 'done'
//	for_cmd    := 'for' WORD 'in' WORD* ';'? 'do' list ';'? 'done'
//	case_cmd   := 'case' WORD 'in' arm* 'esac'
//	arm        := WORD ('|' WORD)* ')' list ';;'
//	fn_def     := 'fn' (WORD | reserved word) '(' ')' '{' list '}'
//	simple     := assign* (WORD | redirect)*
//	assign     := WORD shaped like NAME=VALUE, only while no WORD has
//	              appeared yet for this simple command
//	redirect   := ('<'|'>'|'<<'|'>>'|'<&'|'>&'|'<>') WORD
//
// This mirrors the shape of shrs_lang's grammar (original_source) and the
// Parser-struct-with-Parse-method idiom of mvdan-sh/syntax, simplified per
// spec.md §1's explicit Non-goals (no quoting beyond literal quote-stripping,
// no globbing, no substitutions of any kind at parse time).
package parser

import (
	"fmt"
	"regexp"

	"github.com/shev-sh/shev/internal/ast"
	"github.com/shev-sh/shev/internal/lexer"
	"github.com/shev-sh/shev/internal/token"
)

// ParseError reports a syntax problem found while parsing a line. It is
// returned as a plain error; interp/cmd callers distinguish it with
// errors.As when needed.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "parse error: " + e.Msg }

// Parser turns one raw input line into an ast.Command.
type Parser struct {
	items []lexer.Item
	pos   int
}

// New returns a Parser ready to parse line.
func New(line string) *Parser {
	return &Parser{items: lexer.All(line)}
}

// Parse is the package-level convenience matching the §6 Parser contract:
// given a string, return a Command or an error.
func Parse(line string) (*ast.Command, error) {
	return New(line).Parse()
}

func (p *Parser) cur() lexer.Item  { return p.items[p.pos] }
func (p *Parser) advance()         { p.pos++ }
func (p *Parser) at(t token.Token) bool {
	return p.cur().Tok == t
}

func (p *Parser) expect(t token.Token) (lexer.Item, error) {
	if !p.at(t) {
		return lexer.Item{}, &ParseError{Msg: fmt.Sprintf("expected %s, got %s %q", t, p.cur().Tok, p.cur().Lit)}
	}
	it := p.cur()
	p.advance()
	return it, nil
}

// Parse runs the grammar over the whole line, requiring it be fully
// consumed (apart from trailing EOF).
func (p *Parser) Parse() (*ast.Command, error) {
	if p.at(token.EOF) {
		return &ast.Command{Kind: ast.None}, nil
	}
	cmd, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, &ParseError{Msg: fmt.Sprintf("unexpected trailing token %s %q", p.cur().Tok, p.cur().Lit)}
	}
	return cmd, nil
}

func (p *Parser) listTerminated() bool {
	switch p.cur().Tok {
	case token.EOF, token.RPAREN, token.RBRACE, token.DSEMI,
		token.THEN, token.ELIF, token.ELSE, token.FI,
		token.DO, token.DONE, token.ESAC:
		return true
	}
	return false
}

func (p *Parser) parseList() (*ast.Command, error) {
	left, err := p.parseAndOr()
	if err != nil {
		return nil, err
	}

	switch p.cur().Tok {
	case token.SEMI:
		p.advance()
		if p.listTerminated() {
			return &ast.Command{Kind: ast.SeqList, Left: left}, nil
		}
		right, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return &ast.Command{Kind: ast.SeqList, Left: left, Right: right}, nil
	case token.AMP:
		p.advance()
		if p.listTerminated() {
			return &ast.Command{Kind: ast.AsyncList, Left: left}, nil
		}
		right, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return &ast.Command{Kind: ast.AsyncList, Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *Parser) parseAndOr() (*ast.Command, error) {
	left, err := p.parsePipeline()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Tok {
		case token.AND:
			p.advance()
			right, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			left = &ast.Command{Kind: ast.And, Left: left, Right: right}
		case token.OR:
			p.advance()
			right, err := p.parsePipeline()
			if err != nil {
				return nil, err
			}
			left = &ast.Command{Kind: ast.Or, Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

// parsePipeline is deliberately left-recursive: a|b|c yields
// Pipeline(Pipeline(a,b),c), matching the left-leaning trees spec.md §3
// calls out explicitly.
func (p *Parser) parsePipeline() (*ast.Command, error) {
	left, err := p.parseBang()
	if err != nil {
		return nil, err
	}
	for p.at(token.PIPE) {
		p.advance()
		right, err := p.parseBang()
		if err != nil {
			return nil, err
		}
		left = &ast.Command{Kind: ast.Pipeline, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseBang() (*ast.Command, error) {
	if p.at(token.BANG) {
		p.advance()
		inner, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		return &ast.Command{Kind: ast.Not, Inner: inner}, nil
	}
	return p.parseCompound()
}

func (p *Parser) parseCompound() (*ast.Command, error) {
	switch p.cur().Tok {
	case token.LPAREN:
		return p.parseSubshell()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhileUntil(false)
	case token.UNTIL:
		return p.parseWhileUntil(true)
	case token.FOR:
		return p.parseFor()
	case token.CASE:
		return p.parseCase()
	case token.FN:
		return p.parseFn()
	default:
		return p.parseSimple()
	}
}

func (p *Parser) parseSubshell() (*ast.Command, error) {
	p.advance() // (
	inner, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.Subshell, Inner: inner}, nil
}

func (p *Parser) skipOptSemi() {
	if p.at(token.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseIf() (*ast.Command, error) {
	p.advance() // if
	var conds []ast.Condition
	cond, err := p.parseAndOr()
	if err != nil {
		return nil, err
	}
	p.skipOptSemi()
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	conds = append(conds, ast.Condition{Cond: cond, Body: body})

	for p.at(token.SEMI) || p.at(token.ELIF) {
		p.skipOptSemi()
		if !p.at(token.ELIF) {
			break
		}
		p.advance() // elif
		cond, err := p.parseAndOr()
		if err != nil {
			return nil, err
		}
		p.skipOptSemi()
		if _, err := p.expect(token.THEN); err != nil {
			return nil, err
		}
		body, err := p.parseList()
		if err != nil {
			return nil, err
		}
		conds = append(conds, ast.Condition{Cond: cond, Body: body})
	}

	var elsePart *ast.Command
	p.skipOptSemi()
	if p.at(token.ELSE) {
		p.advance()
		elsePart, err = p.parseList()
		if err != nil {
			return nil, err
		}
	}
	p.skipOptSemi()
	if _, err := p.expect(token.FI); err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.If, Conds: conds, ElsePart: elsePart}, nil
}

func (p *Parser) parseWhileUntil(until bool) (*ast.Command, error) {
	p.advance() // while / until
	cond, err := p.parseAndOr()
	if err != nil {
		return nil, err
	}
	p.skipOptSemi()
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipOptSemi()
	if _, err := p.expect(token.DONE); err != nil {
		return nil, err
	}
	kind := ast.While
	if until {
		kind = ast.Until
	}
	return &ast.Command{Kind: kind, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.Command, error) {
	p.advance() // for
	nameItem, err := p.expect(token.WORD)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	var words []string
	for p.at(token.WORD) {
		words = append(words, p.cur().Lit)
		p.advance()
	}
	p.skipOptSemi()
	if _, err := p.expect(token.DO); err != nil {
		return nil, err
	}
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipOptSemi()
	if _, err := p.expect(token.DONE); err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.For, Name: nameItem.Lit, WordList: words, Body: body}, nil
}

func (p *Parser) parseCase() (*ast.Command, error) {
	p.advance() // case
	wordItem, err := p.expect(token.WORD)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	var arms []ast.CaseArm
	for !p.at(token.ESAC) {
		var patterns []string
		for {
			pat, err := p.expect(token.WORD)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, pat.Lit)
			if p.at(token.PIPE) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		body, err := p.parseList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.DSEMI); err != nil {
			return nil, err
		}
		arms = append(arms, ast.CaseArm{Patterns: patterns, Body: body})
	}
	if _, err := p.expect(token.ESAC); err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.Case, Word: wordItem.Lit, Arms: arms}, nil
}

func (p *Parser) parseFn() (*ast.Command, error) {
	p.advance() // fn
	// A reserved word is accepted as the name here; the evaluator rejects
	// it with ReservedNameError.
	nameItem := p.cur()
	if nameItem.Tok != token.WORD && !token.IsReserved(nameItem.Lit) {
		return nil, &ParseError{Msg: fmt.Sprintf("expected %s, got %s %q", token.WORD, nameItem.Tok, nameItem.Lit)}
	}
	p.advance()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.Fn, FName: nameItem.Lit, FBody: body}, nil
}

var assignRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

func (p *Parser) parseSimple() (*ast.Command, error) {
	var assigns []ast.Assign
	var args []string
	var redirects []ast.Redirect

	// Leading NAME=VALUE words are assignments; the first word that does
	// not match stops assignment scanning for good (spec.md §3: assigns
	// are pre-command environment overrides, so they only make sense
	// before the command name).
	for p.at(token.WORD) {
		if m := assignRe.FindStringSubmatch(p.cur().Lit); m != nil && len(args) == 0 {
			assigns = append(assigns, ast.Assign{Var: m[1], Val: m[2]})
			p.advance()
			continue
		}
		break
	}

	for {
		switch p.cur().Tok {
		case token.WORD:
			args = append(args, p.cur().Lit)
			p.advance()
		case token.LSS, token.GTR, token.SHL, token.SHR, token.LSSAMP, token.GTRAMP, token.LSSGTR:
			r, err := p.parseRedirect()
			if err != nil {
				return nil, err
			}
			redirects = append(redirects, r)
		default:
			if len(args) == 0 && len(assigns) == 0 && len(redirects) == 0 {
				return nil, &ParseError{Msg: fmt.Sprintf("unexpected token %s %q", p.cur().Tok, p.cur().Lit)}
			}
			return &ast.Command{Kind: ast.Simple, Assigns: assigns, Args: args, Redirects: redirects}, nil
		}
	}
}

func (p *Parser) parseRedirect() (ast.Redirect, error) {
	tok := p.cur().Tok
	p.advance()
	var mode ast.RedirectMode
	switch tok {
	case token.LSS:
		mode = ast.Read
	case token.GTR:
		mode = ast.Write
	case token.SHL:
		mode = ast.ReadAppend
	case token.SHR:
		mode = ast.WriteAppend
	case token.LSSAMP:
		mode = ast.ReadDup
	case token.GTRAMP:
		mode = ast.WriteDup
	case token.LSSGTR:
		mode = ast.ReadWrite
	}
	file, err := p.expect(token.WORD)
	if err != nil {
		return ast.Redirect{}, err
	}
	return ast.Redirect{Mode: mode, File: file.Lit}, nil
}
