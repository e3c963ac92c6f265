package diagnostics

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Category groups diagnostics by the compiler stage that raised them.
type Category string

const (
	CategoryLexical  Category = "lexical"
	CategorySyntax   Category = "syntax"
	CategoryScope    Category = "semantic-scope"
	CategoryTyping   Category = "semantic-typing"
	CategoryElement  Category = "semantic-element"
	CategoryInvariant Category = "compiler-invariant"
)

// Kind is a fine-grained diagnostic identity within a Category, named after
// the condition rather than the generic "error N" teacher convention, so a
// caller can switch on it without parsing Message.
type Kind string

const (
	// Lexical
	KindForbiddenCharacter    Kind = "forbidden_character"
	KindInvalidIntegerLiteral Kind = "invalid_integer_literal"
	KindInvalidSymbol         Kind = "invalid_symbol"
	KindUnterminatedComment   Kind = "unterminated_comment"
	KindUnterminatedString    Kind = "unterminated_string"
	KindInvalidEscapeSequence Kind = "invalid_escape_sequence"
	KindInvalidUTF8           Kind = "invalid_utf8"

	// Syntax
	KindExpectedOneOf           Kind = "expected_one_of"
	KindUnexpectedEOF           Kind = "unexpected_eof"
	KindExpressionStatementRoot Kind = "expression_statement_at_root"

	// Semantic - scope
	KindItemRedeclared            Kind = "item_redeclared"
	KindItemUndeclared            Kind = "item_undeclared"
	KindArrayIndexOutOfRange      Kind = "array_index_out_of_range"
	KindTupleFieldDoesNotExist    Kind = "tuple_field_does_not_exist"
	KindStructureFieldDoesNotExist Kind = "structure_field_does_not_exist"
	KindInvalidDescriptor         Kind = "invalid_descriptor"
	KindExpectedNamespace         Kind = "expected_namespace"
	KindMatchPatternExpectedEvaluable Kind = "match_branch_pattern_expected_evaluable"

	// Semantic - typing
	KindOperatorOperandExpected Kind = "operator_operand_expected"
	KindTypeMismatch            Kind = "type_mismatch"
	KindNonConstantElement      Kind = "non_constant_element"
	KindEnumerationVariantNotExists Kind = "enumeration_variant_not_exists"
	KindArgumentCount           Kind = "argument_count"
	KindArgumentType            Kind = "argument_type"
	KindArgumentConstantness    Kind = "argument_constantness"
	KindArrayPaddingToLesserSize Kind = "array_padding_to_lesser_size"
	KindArrayNewLengthInvalid   Kind = "array_new_length_invalid"
	KindNonExhaustiveMatch      Kind = "non_exhaustive_match"
	KindDuplicateMatchPattern   Kind = "duplicate_match_pattern"

	// Semantic - element
	KindConstantOverBoolean  Kind = "constant_over_boolean"
	KindDivisionByZero       Kind = "division_by_zero"
	KindIntegerOverflow      Kind = "integer_overflow"
	KindSignedUnsignedMismatch Kind = "signed_unsigned_mismatch"
	KindCastToNonInteger     Kind = "cast_to_non_integer"

	KindInvariantViolation Kind = "compiler_invariant_violation"
)

// Diagnostic is a single located compiler error. It satisfies the error
// interface so it composes with ordinary Go control flow: errors are
// values here, not exceptions.
type Diagnostic struct {
	Category Category
	Kind     Kind
	Location Location
	Message  string

	// Offending carries the raw token/identifier/type strings the taxonomy
	// calls for, keyed by role ("found", "expected", "type", "operator", ...).
	Offending map[string]string
}

func New(category Category, kind Kind, loc Location, message string) *Diagnostic {
	return &Diagnostic{Category: category, Kind: kind, Location: loc, Message: message}
}

func (d *Diagnostic) With(key, value string) *Diagnostic {
	if d.Offending == nil {
		d.Offending = make(map[string]string)
	}
	d.Offending[key] = value
	return d
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}

// Bag accumulates diagnostics across a compilation. Add itself never
// stops anything: a caller in single-error mode (compiler.Options.
// HaltOnFirstError, off by default) stops after its first Add, while in
// multi-error mode it keeps calling Add and inspects the bag at the end.
// Either way, Items and Err return diagnostics in deterministic
// source-location order.
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Empty() bool {
	return len(b.items) == 0
}

func (b *Bag) Len() int {
	return len(b.items)
}

func (b *Bag) Items() []*Diagnostic {
	sorted := make([]*Diagnostic, len(b.items))
	copy(sorted, b.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i].Location, sorted[j].Location
		if a.File != c.File {
			return a.File < c.File
		}
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
	return sorted
}

// Err folds the bag into a single error via go-multierror, preserving
// source-location order in ErrorOrNil's formatted output.
func (b *Bag) Err() error {
	if b.Empty() {
		return nil
	}
	var merr *multierror.Error
	for _, d := range b.Items() {
		merr = multierror.Append(merr, d)
	}
	return merr.ErrorOrNil()
}
