package molecule

// PriceConfigSize is the fixed width of one PriceConfig struct: length(1) + new(8) + renew(8).
const PriceConfigSize = 1 + 8 + 8

// PriceConfig is one tier of a fee table.
//
//	struct PriceConfig { length: byte, new: Uint64, renew: Uint64 }
type PriceConfig struct {
	Length uint8
	New    uint64
	Renew  uint64
}

// PriceConfigList is the fee table carried in a script witness.
//
//	vector PriceConfigList <PriceConfig>;
type PriceConfigList []PriceConfig

// DecodePriceConfigList decodes a fixvec of PriceConfig structs. Tier ordering is
// not checked here.
func DecodePriceConfigList(b []byte) (PriceConfigList, error) {
	count, err := fixvecCount(b, PriceConfigSize, "PriceConfigList")
	if err != nil {
		return nil, err
	}
	out := make(PriceConfigList, 0, count)
	off := NumberSize
	for i := 0; i < count; i++ {
		length, err := readU8(b, &off)
		if err != nil {
			return nil, err
		}
		newPrice, err := readU64le(b, &off)
		if err != nil {
			return nil, err
		}
		renewPrice, err := readU64le(b, &off)
		if err != nil {
			return nil, err
		}
		out = append(out, PriceConfig{Length: length, New: newPrice, Renew: renewPrice})
	}
	return out, nil
}

// Encode serializes the list as a molecule fixvec.
func (l PriceConfigList) Encode() []byte {
	out := make([]byte, 0, NumberSize+len(l)*PriceConfigSize)
	out = appendNumber(out, len(l))
	for _, p := range l {
		out = append(out, p.Length)
		out = appendU64le(out, p.New)
		out = appendU64le(out, p.Renew)
	}
	return out
}
