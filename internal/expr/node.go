package expr

import (
	"math"
	"strings"
)

// node is one vertex of a compiled expression tree. Nodes are immutable
// after parsing, so a tree may be evaluated from many goroutines.
type node interface {
	eval(x float64) float64
	usesVariable() bool
	String() string
}

type numberNode struct {
	value float64
	text  string
}

func (n numberNode) eval(float64) float64 { return n.value }
func (n numberNode) usesVariable() bool   { return false }
func (n numberNode) String() string       { return n.text }

type constantNode struct {
	name  string
	value float64
}

func (n constantNode) eval(float64) float64 { return n.value }
func (n constantNode) usesVariable() bool   { return false }
func (n constantNode) String() string       { return n.name }

type variableNode struct{}

func (variableNode) eval(x float64) float64 { return x }
func (variableNode) usesVariable() bool     { return true }
func (variableNode) String() string         { return variableName }

type unaryNode struct {
	op      byte
	operand node
}

func (n unaryNode) eval(x float64) float64 {
	v := n.operand.eval(x)
	if n.op == '-' {
		return -v
	}
	return v
}

func (n unaryNode) usesVariable() bool { return n.operand.usesVariable() }

func (n unaryNode) String() string {
	return "(" + string(n.op) + n.operand.String() + ")"
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(x float64) float64 {
	l, r := n.left.eval(x), n.right.eval(x)
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	}
	return math.NaN()
}

func (n binaryNode) usesVariable() bool {
	return n.left.usesVariable() || n.right.usesVariable()
}

func (n binaryNode) String() string {
	return "(" + n.left.String() + " " + string(n.op) + " " + n.right.String() + ")"
}

type callNode struct {
	fn   function
	args []node
}

func (n callNode) eval(x float64) float64 {
	switch len(n.args) {
	case 1:
		return n.fn.unary(n.args[0].eval(x))
	case 2:
		return n.fn.binary(n.args[0].eval(x), n.args[1].eval(x))
	}
	return math.NaN()
}

func (n callNode) usesVariable() bool {
	for _, a := range n.args {
		if a.usesVariable() {
			return true
		}
	}
	return false
}

func (n callNode) String() string {
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.fn.name + "(" + strings.Join(parts, ", ") + ")"
}

// function is a named entry in the math namespace. Exactly one of unary or
// binary is set, matching arity.
type function struct {
	name   string
	arity  int
	unary  func(float64) float64
	binary func(float64, float64) float64
}

type constant struct {
	name  string
	value float64
}

// functions and constants are read-only lookup tables; nothing writes to
// them after package initialisation.
var functions = map[string]function{
	"sin":  {name: "sin", arity: 1, unary: math.Sin},
	"cos":  {name: "cos", arity: 1, unary: math.Cos},
	"tan":  {name: "tan", arity: 1, unary: math.Tan},
	"exp":  {name: "exp", arity: 1, unary: math.Exp},
	"ln":   {name: "ln", arity: 1, unary: math.Log},
	"log":  {name: "log", arity: 1, unary: math.Log10},
	"sqrt": {name: "sqrt", arity: 1, unary: math.Sqrt},
	"pow":  {name: "pow", arity: 2, binary: math.Pow},
}

var constants = map[string]constant{
	"pi": {name: "PI", value: math.Pi},
	"e":  {name: "E", value: math.E},
}
