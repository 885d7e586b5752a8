package types

// CastAllowed implements the Cast contract from spec.md §4.4:
//
//	Allowed: same type; any primitive<->primitive (except Void); any
//	non-Unknown->String (string-convertible); Any->any non-Void primitive;
//	named->string. Everything else => Error.
func CastAllowed(from, to Type) bool {
	if IsUnknown(from) || IsUnknown(to) {
		return true
	}
	if from.Equals(to) {
		return true
	}

	fromPrim, fromIsPrim := from.(*Primitive)
	toPrim, toIsPrim := to.(*Primitive)

	if fromIsPrim && toIsPrim && fromPrim.Kind != Void && toPrim.Kind != Void {
		return true
	}

	if toIsPrim && toPrim.Kind == String {
		return true
	}

	if fromIsPrim && fromPrim.Kind == Any && toIsPrim && toPrim.Kind != Void {
		return true
	}

	if _, fromIsNamed := from.(*Named); fromIsNamed && toIsPrim && toPrim.Kind == String {
		return true
	}

	return false
}
