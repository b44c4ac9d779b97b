// SPDX-License-Identifier: Apache-2.0

package idl

type TokenType uint16

const (
	TokenTypeUnknown           TokenType = 0
	TokenTypeIdentifier        TokenType = 1
	TokenTypeIntegerDecimal    TokenType = 2
	TokenTypeIntegerHex        TokenType = 3
	TokenTypeFloatDecimal      TokenType = 4
	TokenTypeText              TokenType = 5
	TokenTypeComment           TokenType = 6
	TokenTypeCurlyOpen         TokenType = 7
	TokenTypeCurlyClose        TokenType = 8
	TokenTypeSquareOpen        TokenType = 9
	TokenTypeSquareClose       TokenType = 10
	TokenTypeParenOpen         TokenType = 11
	TokenTypeParenClose        TokenType = 12
	TokenTypeAngleOpen         TokenType = 13
	TokenTypeAngleClose        TokenType = 14
	TokenTypeComma             TokenType = 15
	TokenTypeSemicolon         TokenType = 16
	TokenTypeColon             TokenType = 17
	TokenTypeEqual             TokenType = 18
	TokenTypeQuestion          TokenType = 19
	TokenTypeMinus             TokenType = 20
	TokenTypeDot               TokenType = 21
	TokenTypeEllipsis          TokenType = 22
	TokenTypeKeywordInterface  TokenType = 23
	TokenTypeKeywordCallback   TokenType = 24
	TokenTypeKeywordDictionary TokenType = 25
	TokenTypeKeywordTypedef    TokenType = 26
	TokenTypeKeywordEnum       TokenType = 27
	TokenTypeKeywordConst      TokenType = 28
	TokenTypeKeywordAttribute  TokenType = 29
	TokenTypeKeywordReadonly   TokenType = 30
	TokenTypeKeywordStatic     TokenType = 31
	TokenTypeKeywordGetter     TokenType = 32
	TokenTypeKeywordSetter     TokenType = 33
	TokenTypeKeywordCreator    TokenType = 34
	TokenTypeKeywordDeleter    TokenType = 35
	TokenTypeKeywordOptional   TokenType = 36
	TokenTypeKeywordSequence   TokenType = 37
	TokenTypeKeywordRequired   TokenType = 38
	TokenTypeKeywordOr         TokenType = 39
	TokenTypeKeywordTrue       TokenType = 40
	TokenTypeKeywordFalse      TokenType = 41
	TokenTypeKeywordNull       TokenType = 42
	TokenTypeNewline           TokenType = 43
	TokenTypeEOF               TokenType = 44
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeUnknown:           "unknown",
	TokenTypeIdentifier:        "identifier",
	TokenTypeIntegerDecimal:    "integer",
	TokenTypeIntegerHex:        "hex-integer",
	TokenTypeFloatDecimal:      "float",
	TokenTypeText:              "string",
	TokenTypeComment:           "comment",
	TokenTypeCurlyOpen:         "{",
	TokenTypeCurlyClose:        "}",
	TokenTypeSquareOpen:        "[",
	TokenTypeSquareClose:       "]",
	TokenTypeParenOpen:         "(",
	TokenTypeParenClose:        ")",
	TokenTypeAngleOpen:         "<",
	TokenTypeAngleClose:        ">",
	TokenTypeComma:             ",",
	TokenTypeSemicolon:         ";",
	TokenTypeColon:             ":",
	TokenTypeEqual:             "=",
	TokenTypeQuestion:          "?",
	TokenTypeMinus:             "-",
	TokenTypeDot:               ".",
	TokenTypeEllipsis:          "...",
	TokenTypeKeywordInterface:  "interface",
	TokenTypeKeywordCallback:   "callback",
	TokenTypeKeywordDictionary: "dictionary",
	TokenTypeKeywordTypedef:    "typedef",
	TokenTypeKeywordEnum:       "enum",
	TokenTypeKeywordConst:      "const",
	TokenTypeKeywordAttribute:  "attribute",
	TokenTypeKeywordReadonly:   "readonly",
	TokenTypeKeywordStatic:     "static",
	TokenTypeKeywordGetter:     "getter",
	TokenTypeKeywordSetter:     "setter",
	TokenTypeKeywordCreator:    "creator",
	TokenTypeKeywordDeleter:    "deleter",
	TokenTypeKeywordOptional:   "optional",
	TokenTypeKeywordSequence:   "sequence",
	TokenTypeKeywordRequired:   "required",
	TokenTypeKeywordOr:         "or",
	TokenTypeKeywordTrue:       "true",
	TokenTypeKeywordFalse:      "false",
	TokenTypeKeywordNull:       "null",
	TokenTypeNewline:           "newline",
	TokenTypeEOF:               "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Keywords maps reserved WebIDL words to their token types. Words that only
// act as type names in certain positions (void, long, DOMString, ...) are not
// keywords; the parser recognizes them contextually through Primitives.
var Keywords = map[string]TokenType{
	"interface":  TokenTypeKeywordInterface,
	"callback":   TokenTypeKeywordCallback,
	"dictionary": TokenTypeKeywordDictionary,
	"typedef":    TokenTypeKeywordTypedef,
	"enum":       TokenTypeKeywordEnum,
	"const":      TokenTypeKeywordConst,
	"attribute":  TokenTypeKeywordAttribute,
	"readonly":   TokenTypeKeywordReadonly,
	"static":     TokenTypeKeywordStatic,
	"getter":     TokenTypeKeywordGetter,
	"setter":     TokenTypeKeywordSetter,
	"creator":    TokenTypeKeywordCreator,
	"deleter":    TokenTypeKeywordDeleter,
	"optional":   TokenTypeKeywordOptional,
	"sequence":   TokenTypeKeywordSequence,
	"required":   TokenTypeKeywordRequired,
	"or":         TokenTypeKeywordOr,
	"true":       TokenTypeKeywordTrue,
	"false":      TokenTypeKeywordFalse,
	"null":       TokenTypeKeywordNull,
}
