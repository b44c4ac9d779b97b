// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"fmt"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/exc"
	"gopkg.widl.org/bindgen.go/internal/idl"
	"gopkg.widl.org/bindgen.go/internal/iter"
)

type ParserWebIDL struct {
	reporter exc.Reporter
}

func NewParserWebIDL(reporter exc.Reporter) *ParserWebIDL {
	return &ParserWebIDL{reporter: reporter}
}

func (self *ParserWebIDL) PrepareParse(ctx context.Context, f idl.LexerFile) (*parserWebIDLTokens, error) {
	ft, err := f.Tokens(ctx)
	if err != nil {
		return nil, err
	}

	// newlines and comments carry no grammar; the parser never has to see
	// them.
	filtered := iter.NewIteratorFilter(ft, idl.Filter[*idl.Token](iter.FilterFunc[*idl.Token](func(ctx context.Context, t *idl.Token) bool {
		switch t.Type {
		case idl.TokenTypeNewline, idl.TokenTypeComment:
			return false
		default:
			return true
		}
	})))

	tokens := iter.NewLookahead(filtered, 8)

	return &parserWebIDLTokens{
		reporter: self.reporter,
		ctx:      ctx,
		tokens:   tokens,
		uri:      f.Path(ctx),
	}, nil
}

type parserWebIDLTokens struct {
	reporter exc.Reporter
	ctx      context.Context
	uri      string
	// this is the .Span.End of the last successfully parsed token; we keep
	// track of it so that we can give a meaningful location to "unexpected
	// EOF" errors.
	loc    idl.Location
	tokens idl.Lookahead[*idl.Token]
}

func (p *parserWebIDLTokens) report(code string, message string) {
	_ = p.reporter.Report(exc.New(exc.Location{
		URI:      p.uri,
		Location: p.loc,
	}, code, message))
}

func (p *parserWebIDLTokens) advance() {
	maybeToken := p.tokens.Lookahead(p.ctx, 0)
	if maybeToken.IsPresent() {
		p.loc = *maybeToken.Value().Span.End
	}
	_ = p.tokens.Next(p.ctx)
}

func (p *parserWebIDLTokens) peek() *idl.Token {
	maybeToken := p.tokens.Lookahead(p.ctx, 0)
	if !maybeToken.IsPresent() {
		return nil
	}
	if maybeToken.Value().Type == idl.TokenTypeEOF {
		return nil
	}
	return maybeToken.Value()
}

func (p *parserWebIDLTokens) peekN(n uint8) *idl.Token {
	maybeToken := p.tokens.Lookahead(p.ctx, n)
	if !maybeToken.IsPresent() {
		return nil
	}
	if maybeToken.Value().Type == idl.TokenTypeEOF {
		return nil
	}
	return maybeToken.Value()
}

// reports an error if there is no current token, or the current token isn't
// of the expected type. advances on success.
func (p *parserWebIDLTokens) expectOne(expectedType idl.TokenType) *idl.Token {
	return p.expectOneOf([]idl.TokenType{expectedType})
}

// reports an error if current token isn't one of the given expected types.
// advances on success.
func (p *parserWebIDLTokens) expectOneOf(expectedTypes []idl.TokenType) *idl.Token {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.report(exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF (expecting %v)", expectedTypes))
		return nil
	}
	for _, expectedType := range expectedTypes {
		if maybeToken.Type == expectedType {
			p.advance()
			return maybeToken
		}
	}
	p.report(exc.CodeSyntaxError, fmt.Sprintf("unexpected %s (expecting %v)", maybeToken.Value, expectedTypes))
	return nil
}

// Definitions = { ExtendedAttributeList Definition }
func (p *parserWebIDLTokens) parse() []ast.Definition {
	definitions := []ast.Definition{}
	for {
		maybeToken := p.peek()
		if maybeToken == nil {
			break
		}

		var attrs ast.ExtendedAttributeSet
		if maybeToken.Type == idl.TokenTypeSquareOpen {
			attrs = p.parseExtendedAttributeList()
			if attrs == nil {
				return nil
			}
			maybeToken = p.peek()
			if maybeToken == nil {
				p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting a definition)")
				return nil
			}
		}

		var def ast.Definition
		switch maybeToken.Type {
		case idl.TokenTypeKeywordInterface:
			def = p.parseInterface(attrs, false)
		case idl.TokenTypeKeywordCallback:
			def = p.parseCallback(attrs)
		case idl.TokenTypeKeywordDictionary:
			def = p.parseDictionary(attrs)
		case idl.TokenTypeKeywordTypedef:
			def = p.parseTypedef(attrs)
		case idl.TokenTypeKeywordEnum:
			def = p.parseEnum(attrs)
		default:
			p.report(exc.CodeSyntaxError, fmt.Sprintf("unexpected %s (expecting a definition)", maybeToken.Value))
			return nil
		}
		if def == nil {
			return nil
		}
		definitions = append(definitions, def)
	}
	return definitions
}

// Callback = "callback" ("interface" Interface | identifier "=" Type "(" ArgumentList ")" ";")
func (p *parserWebIDLTokens) parseCallback(attrs ast.ExtendedAttributeSet) ast.Definition {
	if p.expectOne(idl.TokenTypeKeywordCallback) == nil {
		return nil
	}
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeKeywordInterface {
		return p.parseInterface(attrs, true)
	}

	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeEqual) == nil {
		return nil
	}
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	args := p.parseArgumentList()
	if args == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	cb := &ast.Callback{
		Return: ret,
		Args:   args,
	}
	p.fillDefinition(&cb.Name, &cb.ExtendedAttributes, &cb.Source, name.Value, attrs)
	return cb
}

// Interface = "interface" identifier [":" identifier] "{" Members "}" ";"
func (p *parserWebIDLTokens) parseInterface(attrs ast.ExtendedAttributeSet, isCallback bool) ast.Definition {
	if p.expectOne(idl.TokenTypeKeywordInterface) == nil {
		return nil
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	iface := &ast.Interface{
		CallbackInterface: isCallback,
		Global:            attrs.Has("Global"),
	}
	p.fillDefinition(&iface.Name, &iface.ExtendedAttributes, &iface.Source, name.Value, attrs)

	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeColon {
		p.advance()
		parent := p.expectOne(idl.TokenTypeIdentifier)
		if parent == nil {
			return nil
		}
		iface.Inherits = parent.Value
	}

	if p.expectOne(idl.TokenTypeCurlyOpen) == nil {
		return nil
	}
	if !p.parseInterfaceMembers(iface) {
		return nil
	}
	if p.expectOne(idl.TokenTypeCurlyClose) == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	return iface
}

func (p *parserWebIDLTokens) parseInterfaceMembers(iface *ast.Interface) bool {
	operations := map[string]*ast.Operation{}
	for {
		maybeToken := p.peek()
		if maybeToken == nil || maybeToken.Type == idl.TokenTypeCurlyClose {
			return true
		}
		if !p.parseInterfaceMember(iface, operations) {
			return false
		}
	}
}

// Member = ExtendedAttributeList (Const | Attribute | Operation)
func (p *parserWebIDLTokens) parseInterfaceMember(iface *ast.Interface, operations map[string]*ast.Operation) bool {
	var attrs ast.ExtendedAttributeSet
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeSquareOpen {
		attrs = p.parseExtendedAttributeList()
		if attrs == nil {
			return false
		}
	}

	isStatic := false
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeKeywordStatic {
		p.advance()
		isStatic = true
		maybeToken = p.peek()
	}

	if maybeToken == nil {
		p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting an interface member)")
		return false
	}

	switch maybeToken.Type {
	case idl.TokenTypeKeywordConst:
		if isStatic {
			p.report(exc.CodeSyntaxError, "constants cannot be declared static")
			return false
		}
		return p.parseConstant(iface, attrs)
	case idl.TokenTypeKeywordReadonly, idl.TokenTypeKeywordAttribute:
		return p.parseAttribute(iface, attrs, isStatic)
	default:
		return p.parseOperation(iface, operations, attrs, isStatic)
	}
}

// Constant = "const" Type identifier "=" ConstValue ";"
func (p *parserWebIDLTokens) parseConstant(iface *ast.Interface, attrs ast.ExtendedAttributeSet) bool {
	if p.expectOne(idl.TokenTypeKeywordConst) == nil {
		return false
	}
	typ := p.parseType()
	if typ == nil {
		return false
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return false
	}
	if p.expectOne(idl.TokenTypeEqual) == nil {
		return false
	}
	value := p.parseConstValue()
	if value == nil {
		return false
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return false
	}
	constant := &ast.Constant{
		Type:  typ,
		Value: *value,
	}
	p.fillMember(&constant.Name, &constant.ExtendedAttributes, iface, name.Value, attrs)
	iface.Members = append(iface.Members, constant)
	return true
}

// Attribute = ["readonly"] "attribute" Type identifier ";"
func (p *parserWebIDLTokens) parseAttribute(iface *ast.Interface, attrs ast.ExtendedAttributeSet, isStatic bool) bool {
	isReadonly := false
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeKeywordReadonly {
		p.advance()
		isReadonly = true
	}
	if p.expectOne(idl.TokenTypeKeywordAttribute) == nil {
		return false
	}
	typ := p.parseType()
	if typ == nil {
		return false
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return false
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return false
	}
	attribute := &ast.Attribute{
		Type:     typ,
		Readonly: isReadonly,
	}
	attribute.Static = isStatic
	p.fillMember(&attribute.Name, &attribute.ExtendedAttributes, iface, name.Value, attrs)
	iface.Members = append(iface.Members, attribute)
	return true
}

// Operation = {Qualifier} ReturnType identifier "(" ArgumentList ")" ";"
//
// Overloads sharing a name accumulate signatures on one member. Qualifiers
// may not repeat within a single operation production, adjacent or not.
func (p *parserWebIDLTokens) parseOperation(iface *ast.Interface, operations map[string]*ast.Operation, attrs ast.ExtendedAttributeSet, isStatic bool) bool {
	qualifiers := []string{}
	for {
		maybeToken := p.peek()
		if maybeToken == nil {
			p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting an operation)")
			return false
		}
		var q string
		switch maybeToken.Type {
		case idl.TokenTypeKeywordGetter:
			q = "getter"
		case idl.TokenTypeKeywordSetter:
			q = "setter"
		case idl.TokenTypeKeywordCreator:
			q = "creator"
		case idl.TokenTypeKeywordDeleter:
			q = "deleter"
		}
		if q == "" {
			break
		}
		for _, have := range qualifiers {
			if have == q {
				p.report(exc.CodeDuplicateQualifier, fmt.Sprintf("duplicate qualifier %s on operation", q))
				return false
			}
		}
		qualifiers = append(qualifiers, q)
		p.advance()
	}

	var ret *ast.Type
	var name string
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeIdentifier && maybeToken.Value == "constructor" {
		next := p.peekN(1)
		if next != nil && next.Type == idl.TokenTypeParenOpen {
			// constructor() has no declared return type.
			p.advance()
			ret = ast.NewPrimitiveType("Void")
			name = "constructor"
		}
	}
	if name == "" {
		ret = p.parseType()
		if ret == nil {
			return false
		}
		nameToken := p.expectOne(idl.TokenTypeIdentifier)
		if nameToken == nil {
			return false
		}
		name = nameToken.Value
	}

	args := p.parseArgumentList()
	if args == nil {
		return false
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return false
	}

	signature := &ast.Signature{Return: ret, Args: args}
	if existing, ok := operations[name]; ok {
		existing.Signatures = append(existing.Signatures, signature)
		for _, q := range qualifiers {
			if !existing.HasQualifier(q) {
				existing.Qualifiers = append(existing.Qualifiers, q)
			}
		}
		return true
	}
	operation := &ast.Operation{
		Signatures: []*ast.Signature{signature},
		Qualifiers: qualifiers,
	}
	operation.Static = isStatic
	p.fillMember(&operation.Name, &operation.ExtendedAttributes, iface, name, attrs)
	operations[name] = operation
	iface.Members = append(iface.Members, operation)
	return true
}

// Dictionary = "dictionary" identifier "{" {DictionaryMember} "}" ";"
func (p *parserWebIDLTokens) parseDictionary(attrs ast.ExtendedAttributeSet) ast.Definition {
	if p.expectOne(idl.TokenTypeKeywordDictionary) == nil {
		return nil
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	dict := &ast.Dictionary{}
	p.fillDefinition(&dict.Name, &dict.ExtendedAttributes, &dict.Source, name.Value, attrs)

	if p.expectOne(idl.TokenTypeCurlyOpen) == nil {
		return nil
	}
	for {
		maybeToken := p.peek()
		if maybeToken == nil || maybeToken.Type == idl.TokenTypeCurlyClose {
			break
		}
		member := p.parseDictionaryMember(dict)
		if member == nil {
			return nil
		}
		dict.Members = append(dict.Members, member)
	}
	if p.expectOne(idl.TokenTypeCurlyClose) == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	return dict
}

// DictionaryMember = ExtendedAttributeList ["required"] Type identifier ["=" Value] ";"
func (p *parserWebIDLTokens) parseDictionaryMember(dict *ast.Dictionary) *ast.DictionaryMember {
	var attrs ast.ExtendedAttributeSet
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeSquareOpen {
		attrs = p.parseExtendedAttributeList()
		if attrs == nil {
			return nil
		}
	}
	required := false
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeKeywordRequired {
		p.advance()
		required = true
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	member := &ast.DictionaryMember{
		Name:               ast.Identifier{Name: name.Value, Scope: dict.Name.Name},
		Type:               typ,
		Required:           required,
		ExtendedAttributes: attrs,
	}
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeEqual {
		p.advance()
		value := p.parseConstValue()
		if value == nil {
			return nil
		}
		member.Default = *value
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	return member
}

// Typedef = "typedef" Type identifier ";"
func (p *parserWebIDLTokens) parseTypedef(attrs ast.ExtendedAttributeSet) ast.Definition {
	if p.expectOne(idl.TokenTypeKeywordTypedef) == nil {
		return nil
	}
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	td := &ast.Typedef{Type: typ}
	p.fillDefinition(&td.Name, &td.ExtendedAttributes, &td.Source, name.Value, attrs)
	return td
}

// Enum = "enum" identifier "{" text_lit {"," text_lit} "}" ";"
func (p *parserWebIDLTokens) parseEnum(attrs ast.ExtendedAttributeSet) ast.Definition {
	if p.expectOne(idl.TokenTypeKeywordEnum) == nil {
		return nil
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	enum := &ast.Enum{}
	p.fillDefinition(&enum.Name, &enum.ExtendedAttributes, &enum.Source, name.Value, attrs)
	if p.expectOne(idl.TokenTypeCurlyOpen) == nil {
		return nil
	}
	seen := map[string]bool{}
	for {
		maybeToken := p.peek()
		if maybeToken == nil || maybeToken.Type != idl.TokenTypeText {
			break
		}
		p.advance()
		if seen[maybeToken.Value] {
			p.report(exc.CodeDuplicateIdentifier, fmt.Sprintf("duplicate enumeration value %q in %s", maybeToken.Value, enum.Name.Name))
			return nil
		}
		seen[maybeToken.Value] = true
		enum.Values = append(enum.Values, maybeToken.Value)

		maybeToken = p.peek()
		if maybeToken == nil || maybeToken.Type != idl.TokenTypeComma {
			break
		}
		p.advance()
	}
	if p.expectOne(idl.TokenTypeCurlyClose) == nil {
		return nil
	}
	if p.expectOne(idl.TokenTypeSemicolon) == nil {
		return nil
	}
	return enum
}

// Type = (UnionType | SequenceType | PrimitiveType | identifier) ["?"]
func (p *parserWebIDLTokens) parseType() *ast.Type {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting a type)")
		return nil
	}

	var typ *ast.Type
	switch maybeToken.Type {
	case idl.TokenTypeParenOpen:
		typ = p.parseUnionType()
	case idl.TokenTypeKeywordSequence:
		p.advance()
		if p.expectOne(idl.TokenTypeAngleOpen) == nil {
			return nil
		}
		inner := p.parseType()
		if inner == nil {
			return nil
		}
		if p.expectOne(idl.TokenTypeAngleClose) == nil {
			return nil
		}
		typ = ast.NewSequenceType(inner)
	case idl.TokenTypeIdentifier:
		typ = p.parseNamedType()
	default:
		p.report(exc.CodeSyntaxError, fmt.Sprintf("unexpected %s (expecting a type)", maybeToken.Value))
		return nil
	}
	if typ == nil {
		return nil
	}
	return p.parseNullableSuffix(typ)
}

func (p *parserWebIDLTokens) parseNullableSuffix(typ *ast.Type) *ast.Type {
	maybeToken := p.peek()
	if maybeToken == nil || maybeToken.Type != idl.TokenTypeQuestion {
		return typ
	}
	p.advance()
	if typ.IsNullable() {
		p.report(exc.CodeInvalidNullableNesting, "nullable type cannot wrap another nullable type")
		return nil
	}
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeQuestion {
		p.report(exc.CodeInvalidNullableNesting, "nullable type cannot wrap another nullable type")
		return nil
	}
	return ast.NewNullableType(typ)
}

// UnionType = "(" Type "or" Type {"or" Type} ")"
func (p *parserWebIDLTokens) parseUnionType() *ast.Type {
	if p.expectOne(idl.TokenTypeParenOpen) == nil {
		return nil
	}
	options := []*ast.Type{}
	for {
		option := p.parseType()
		if option == nil {
			return nil
		}
		options = append(options, option)

		maybeToken := p.peek()
		if maybeToken == nil {
			p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting 'or' or ')')")
			return nil
		}
		if maybeToken.Type == idl.TokenTypeKeywordOr {
			p.advance()
			continue
		}
		break
	}
	if p.expectOne(idl.TokenTypeParenClose) == nil {
		return nil
	}
	if len(options) < 2 {
		p.report(exc.CodeSyntaxError, "union type requires at least two member types")
		return nil
	}
	return &ast.Type{Kind: ast.TypeKindUnion, Options: options}
}

// parseNamedType reads a (possibly multi-word) type name. Multi-word forms
// are only legal for the built-in primitives ("unsigned long long" and
// friends); anything else is a reference to a definition that may not have
// been parsed yet.
func (p *parserWebIDLTokens) parseNamedType() *ast.Type {
	first := p.expectOne(idl.TokenTypeIdentifier)
	if first == nil {
		return nil
	}
	words := first.Value
	switch first.Value {
	case "unsigned", "unrestricted":
		next := p.expectOne(idl.TokenTypeIdentifier)
		if next == nil {
			return nil
		}
		words = words + " " + next.Value
		if next.Value == "long" {
			if maybeToken := p.peek(); maybeToken != nil && maybeToken.Type == idl.TokenTypeIdentifier && maybeToken.Value == "long" {
				p.advance()
				words = words + " long"
			}
		}
	case "long":
		if maybeToken := p.peek(); maybeToken != nil && maybeToken.Type == idl.TokenTypeIdentifier && maybeToken.Value == "long" {
			p.advance()
			words = words + " long"
		}
	}

	if canonical, ok := idl.Primitives[words]; ok {
		return ast.NewPrimitiveType(canonical)
	}
	if words != first.Value {
		p.report(exc.CodeSyntaxError, fmt.Sprintf("unknown multi-word type %q", words))
		return nil
	}
	return ast.NewReferenceType(words)
}

// ArgumentList = "(" [Argument {"," Argument}] ")"
func (p *parserWebIDLTokens) parseArgumentList() []*ast.Argument {
	if p.expectOne(idl.TokenTypeParenOpen) == nil {
		return nil
	}
	args := []*ast.Argument{}
	for {
		maybeToken := p.peek()
		if maybeToken == nil {
			p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting an argument or ')')")
			return nil
		}
		if maybeToken.Type == idl.TokenTypeParenClose {
			break
		}
		arg := p.parseArgument()
		if arg == nil {
			return nil
		}
		if arg.Variadic {
			if maybeToken := p.peek(); maybeToken != nil && maybeToken.Type != idl.TokenTypeParenClose {
				p.report(exc.CodeSyntaxError, "variadic argument must be last")
				return nil
			}
		}
		args = append(args, arg)

		maybeToken = p.peek()
		if maybeToken == nil || maybeToken.Type != idl.TokenTypeComma {
			break
		}
		p.advance()
	}
	if p.expectOne(idl.TokenTypeParenClose) == nil {
		return nil
	}
	return args
}

// Argument = ExtendedAttributeList ["optional"] Type ["..."] identifier ["=" Value]
func (p *parserWebIDLTokens) parseArgument() *ast.Argument {
	arg := &ast.Argument{}
	maybeToken := p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeSquareOpen {
		if p.parseExtendedAttributeList() == nil {
			return nil
		}
		// argument-level annotations are accepted and discarded; nothing in
		// the generator consumes them.
	}
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeKeywordOptional {
		p.advance()
		arg.Optional = true
	}
	arg.Type = p.parseType()
	if arg.Type == nil {
		return nil
	}
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeEllipsis {
		p.advance()
		arg.Variadic = true
	}
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	arg.Name = name.Value
	maybeToken = p.peek()
	if maybeToken != nil && maybeToken.Type == idl.TokenTypeEqual {
		p.advance()
		value := p.parseConstValue()
		if value == nil {
			return nil
		}
		arg.Default = *value
	}
	return arg
}

// ConstValue = ["-"] (integer | float) | "true" | "false" | "null" | text_lit
func (p *parserWebIDLTokens) parseConstValue() *string {
	maybeToken := p.peek()
	if maybeToken == nil {
		p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting a value)")
		return nil
	}
	negative := false
	if maybeToken.Type == idl.TokenTypeMinus {
		p.advance()
		negative = true
		maybeToken = p.peek()
		if maybeToken == nil {
			p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting a number)")
			return nil
		}
	}
	switch maybeToken.Type {
	case idl.TokenTypeIntegerDecimal, idl.TokenTypeIntegerHex, idl.TokenTypeFloatDecimal:
		p.advance()
		v := maybeToken.Value
		if negative {
			v = "-" + v
		}
		return &v
	case idl.TokenTypeKeywordTrue, idl.TokenTypeKeywordFalse, idl.TokenTypeKeywordNull, idl.TokenTypeText:
		if negative {
			p.report(exc.CodeSyntaxError, fmt.Sprintf("unexpected %s after '-'", maybeToken.Value))
			return nil
		}
		p.advance()
		return &maybeToken.Value
	default:
		p.report(exc.CodeSyntaxError, fmt.Sprintf("unexpected %s (expecting a value)", maybeToken.Value))
		return nil
	}
}

// ExtendedAttributeList = "[" ExtendedAttribute {"," ExtendedAttribute} "]"
func (p *parserWebIDLTokens) parseExtendedAttributeList() ast.ExtendedAttributeSet {
	if p.expectOne(idl.TokenTypeSquareOpen) == nil {
		return nil
	}
	set := ast.ExtendedAttributeSet{}
	for {
		attr := p.parseExtendedAttribute()
		if attr == nil {
			return nil
		}
		set = append(set, attr)

		maybeToken := p.peek()
		if maybeToken == nil || maybeToken.Type != idl.TokenTypeComma {
			break
		}
		p.advance()
	}
	if p.expectOne(idl.TokenTypeSquareClose) == nil {
		return nil
	}
	return set
}

// ExtendedAttribute = identifier ["=" (identifier | text_lit | "(" identifier {"," identifier} ")") | "(" ArgumentList ")"]
func (p *parserWebIDLTokens) parseExtendedAttribute() *ast.ExtendedAttribute {
	name := p.expectOne(idl.TokenTypeIdentifier)
	if name == nil {
		return nil
	}
	attr := &ast.ExtendedAttribute{
		Name: name.Value,
		Kind: ast.ExtendedAttributeKindFlag,
	}
	maybeToken := p.peek()
	if maybeToken == nil {
		p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting ',' or ']')")
		return nil
	}
	switch maybeToken.Type {
	case idl.TokenTypeEqual:
		p.advance()
		maybeToken = p.peek()
		if maybeToken == nil {
			p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting an extended attribute value)")
			return nil
		}
		if maybeToken.Type == idl.TokenTypeParenOpen {
			p.advance()
			attr.Kind = ast.ExtendedAttributeKindIdentList
			for {
				ident := p.expectOneOf([]idl.TokenType{idl.TokenTypeIdentifier, idl.TokenTypeText})
				if ident == nil {
					return nil
				}
				attr.Values = append(attr.Values, ident.Value)
				maybeToken = p.peek()
				if maybeToken == nil || maybeToken.Type != idl.TokenTypeComma {
					break
				}
				p.advance()
			}
			if p.expectOne(idl.TokenTypeParenClose) == nil {
				return nil
			}
			return attr
		}
		value := p.expectOneOf([]idl.TokenType{idl.TokenTypeIdentifier, idl.TokenTypeText, idl.TokenTypeIntegerDecimal})
		if value == nil {
			return nil
		}
		attr.Kind = ast.ExtendedAttributeKindIdent
		attr.Value = value.Value
		return attr
	case idl.TokenTypeParenOpen:
		attr.Kind = ast.ExtendedAttributeKindArgList
		attr.Args = p.parseArgumentList()
		if attr.Args == nil {
			return nil
		}
		return attr
	default:
		return attr
	}
}

func (p *parserWebIDLTokens) fillDefinition(name *ast.Identifier, attrs *ast.ExtendedAttributeSet, source *string, value string, set ast.ExtendedAttributeSet) {
	*name = ast.Identifier{Name: value}
	*attrs = set
	*source = p.uri
}

func (p *parserWebIDLTokens) fillMember(name *ast.Identifier, attrs *ast.ExtendedAttributeSet, iface *ast.Interface, value string, set ast.ExtendedAttributeSet) {
	*name = ast.Identifier{Name: value, Scope: iface.Name.Name}
	*attrs = set
}
