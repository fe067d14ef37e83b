package molecule

import "bytes"

const (
	AccountIDSize = 20
	CodeHashSize  = 32

	scriptFieldCount      = 3
	accountCharFieldCount = 2
	recordFieldCount      = 5
	subAccountFieldCount  = 11
)

// Script is the CKB lock script of a sub-account owner.
type Script struct {
	CodeHash [CodeHashSize]byte
	HashType byte
	Args     []byte
}

// AccountChar is one character segment of an account label.
type AccountChar struct {
	CharSetName uint32
	Bytes       []byte
}

// AccountChars is the ordered label of an account, one entry per character.
type AccountChars []AccountChar

// Len is the character count used for pricing.
func (c AccountChars) Len() int { return len(c) }

// Concat joins the raw bytes of every segment.
func (c AccountChars) Concat() []byte {
	var buf bytes.Buffer
	for _, ch := range c {
		buf.Write(ch.Bytes)
	}
	return buf.Bytes()
}

// Record is a resolver record attached to an account.
type Record struct {
	Key   []byte
	Type  []byte
	Label []byte
	Value []byte
	TTL   uint32
}

// SubAccount is the record a transaction creates or renews.
type SubAccount struct {
	Lock                 Script
	ID                   [AccountIDSize]byte
	Account              AccountChars
	Suffix               []byte
	RegisteredAt         uint64
	ExpiredAt            uint64
	Status               uint8
	Records              []Record
	Nonce                uint64
	EnableSubAccount     uint8
	RenewSubAccountPrice uint64
}

func decodeScript(b []byte) (Script, error) {
	fields, err := splitTable(b, scriptFieldCount, "Script")
	if err != nil {
		return Script{}, err
	}
	var s Script
	codeHash, err := decodeFixed(fields[0], CodeHashSize, "Script.code_hash")
	if err != nil {
		return Script{}, err
	}
	copy(s.CodeHash[:], codeHash)
	if s.HashType, err = decodeU8(fields[1], "Script.hash_type"); err != nil {
		return Script{}, err
	}
	if s.Args, err = decodeBytes(fields[2], "Script.args"); err != nil {
		return Script{}, err
	}
	return s, nil
}

func decodeAccountChars(b []byte) (AccountChars, error) {
	items, err := splitOffsets(b, "AccountChars")
	if err != nil {
		return nil, err
	}
	out := make(AccountChars, 0, len(items))
	for _, item := range items {
		fields, err := splitTable(item, accountCharFieldCount, "AccountChar")
		if err != nil {
			return nil, err
		}
		charSet, err := decodeU32(fields[0], "AccountChar.char_set_name")
		if err != nil {
			return nil, err
		}
		raw, err := decodeBytes(fields[1], "AccountChar.bytes")
		if err != nil {
			return nil, err
		}
		out = append(out, AccountChar{CharSetName: charSet, Bytes: raw})
	}
	return out, nil
}

func decodeRecords(b []byte) ([]Record, error) {
	items, err := splitOffsets(b, "Records")
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		fields, err := splitTable(item, recordFieldCount, "Record")
		if err != nil {
			return nil, err
		}
		var r Record
		if r.Key, err = decodeBytes(fields[0], "Record.key"); err != nil {
			return nil, err
		}
		if r.Type, err = decodeBytes(fields[1], "Record.type"); err != nil {
			return nil, err
		}
		if r.Label, err = decodeBytes(fields[2], "Record.label"); err != nil {
			return nil, err
		}
		if r.Value, err = decodeBytes(fields[3], "Record.value"); err != nil {
			return nil, err
		}
		if r.TTL, err = decodeU32(fields[4], "Record.ttl"); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodeSubAccount strictly decodes a SubAccount table.
func DecodeSubAccount(b []byte) (*SubAccount, error) {
	fields, err := splitTable(b, subAccountFieldCount, "SubAccount")
	if err != nil {
		return nil, err
	}
	sa := &SubAccount{}
	if sa.Lock, err = decodeScript(fields[0]); err != nil {
		return nil, err
	}
	id, err := decodeFixed(fields[1], AccountIDSize, "SubAccount.id")
	if err != nil {
		return nil, err
	}
	copy(sa.ID[:], id)
	if sa.Account, err = decodeAccountChars(fields[2]); err != nil {
		return nil, err
	}
	if sa.Suffix, err = decodeBytes(fields[3], "SubAccount.suffix"); err != nil {
		return nil, err
	}
	if sa.RegisteredAt, err = decodeU64(fields[4], "SubAccount.registered_at"); err != nil {
		return nil, err
	}
	if sa.ExpiredAt, err = decodeU64(fields[5], "SubAccount.expired_at"); err != nil {
		return nil, err
	}
	if sa.Status, err = decodeU8(fields[6], "SubAccount.status"); err != nil {
		return nil, err
	}
	if sa.Records, err = decodeRecords(fields[7]); err != nil {
		return nil, err
	}
	if sa.Nonce, err = decodeU64(fields[8], "SubAccount.nonce"); err != nil {
		return nil, err
	}
	if sa.EnableSubAccount, err = decodeU8(fields[9], "SubAccount.enable_sub_account"); err != nil {
		return nil, err
	}
	if sa.RenewSubAccountPrice, err = decodeU64(fields[10], "SubAccount.renew_sub_account_price"); err != nil {
		return nil, err
	}
	return sa, nil
}

func (s Script) encode() []byte {
	return encodeOffsets([][]byte{
		s.CodeHash[:],
		{s.HashType},
		EncodeBytes(s.Args),
	})
}

func (c AccountChars) encode() []byte {
	items := make([][]byte, 0, len(c))
	for _, ch := range c {
		items = append(items, encodeOffsets([][]byte{
			appendU32le(nil, ch.CharSetName),
			EncodeBytes(ch.Bytes),
		}))
	}
	return encodeOffsets(items)
}

func encodeRecords(records []Record) []byte {
	items := make([][]byte, 0, len(records))
	for _, r := range records {
		items = append(items, encodeOffsets([][]byte{
			EncodeBytes(r.Key),
			EncodeBytes(r.Type),
			EncodeBytes(r.Label),
			EncodeBytes(r.Value),
			appendU32le(nil, r.TTL),
		}))
	}
	return encodeOffsets(items)
}

// Encode serializes the sub-account as a molecule table.
func (s *SubAccount) Encode() []byte {
	return encodeOffsets([][]byte{
		s.Lock.encode(),
		s.ID[:],
		s.Account.encode(),
		EncodeBytes(s.Suffix),
		appendU64le(nil, s.RegisteredAt),
		appendU64le(nil, s.ExpiredAt),
		{s.Status},
		encodeRecords(s.Records),
		appendU64le(nil, s.Nonce),
		{s.EnableSubAccount},
		appendU64le(nil, s.RenewSubAccountPrice),
	})
}
