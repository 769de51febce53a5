package xps

// EncodingPriority is the order in which encoding tables are preferred: Unicode with surrogates, Unicode, Wansung, Big5, PRC, ShiftJIS, Symbol, and Macintosh Roman.
var EncodingPriority = []Encoding{
	UnicodeFullEncoding,
	UnicodeBMPEncoding,
	WansungEncoding,
	Big5Encoding,
	PRCEncoding,
	ShiftJISEncoding,
	SymbolEncoding,
	MacRomanEncoding,
}

// SelectEncoding selects the first encoding of EncodingPriority that the font provides, regardless of the order in which the font lists its tables. When none is available the font keeps using its default mapping and ErrNoSuitableEncoding is returned.
func SelectEncoding(f *Font) error {
	encodings := f.program.Encodings()
	for _, want := range EncodingPriority {
		for i, enc := range encodings {
			if enc == want {
				f.encoding = i
				return nil
			}
		}
	}
	f.encoding = -1
	return ErrNoSuitableEncoding
}
