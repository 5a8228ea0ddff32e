package expr

// maxDepth bounds parenthesis and unary nesting so hostile input cannot
// drive the recursive descent arbitrarily deep.
const maxDepth = 256

// parser is a recursive-descent parser over the token stream:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | power
//	power   := primary ('^' unary)?
//	primary := number | x | constant | function '(' args ')' | '(' expr ')'
//
// '^' is right-associative and binds tighter than a leading sign, so
// "-x^2" is -(x^2) and "2^-1" is 2^(-1).
type parser struct {
	src    string
	tokens []token
	pos    int
	depth  int
}

func parse(src string, tokens []token) (node, error) {
	p := &parser{src: src, tokens: tokens}

	if p.peek().kind == tokenEOF {
		return nil, syntaxErrorf(src, 0, "empty expression")
	}

	n, err := p.expr()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind != tokenEOF {
		return nil, p.unexpected(t)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOperator(ops ...string) bool {
	t := p.peek()
	if t.kind != tokenOperator {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return syntaxErrorf(p.src, p.peek().pos, "expression nested deeper than %d levels", maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokenEOF {
		return syntaxErrorf(p.src, t.pos, "unexpected end of expression")
	}
	return syntaxErrorf(p.src, t.pos, "unexpected %s %q at position %d", t.kind, t.text, t.pos)
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOperator("+", "-") {
		op := p.next().text[0]
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOperator("*", "/") {
		op := p.next().text[0]
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.isOperator("+", "-") {
		op := p.next().text[0]
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOperator("^") {
		return base, nil
	}
	p.next()
	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: '^', left: base, right: exponent}, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()

	switch t.kind {
	case tokenNumber:
		return numberNode{value: t.value, text: t.text}, nil
	case tokenVariable:
		return variableNode{}, nil
	case tokenConstant:
		return constantNode{name: t.text, value: t.value}, nil
	case tokenFunction:
		return p.call(t)
	case tokenLeftParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()

		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRightParen {
			return nil, syntaxErrorf(p.src, t.pos, "unclosed '(' at position %d", t.pos)
		}
		return inner, nil
	default:
		return nil, p.unexpected(t)
	}
}

func (p *parser) call(name token) (node, error) {
	fn := functions[name.text]

	if open := p.next(); open.kind != tokenLeftParen {
		return nil, syntaxErrorf(p.src, name.pos, "function %s must be followed by '('", fn.name)
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var args []node
	if p.peek().kind != tokenRightParen {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind != tokenComma {
				break
			}
			p.next()
		}
	}

	if closing := p.next(); closing.kind != tokenRightParen {
		return nil, syntaxErrorf(p.src, name.pos, "unclosed argument list for %s at position %d", fn.name, name.pos)
	}
	if len(args) != fn.arity {
		return nil, syntaxErrorf(p.src, name.pos, "%s expects %d argument(s), got %d", fn.name, fn.arity, len(args))
	}
	return callNode{fn: fn, args: args}, nil
}
