package contract

import (
	"bytes"
	"encoding/binary"
	"errors"

	"coopvest_dao/sdk"
)

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

// bytes returns the accumulated buffer, tiny helper but keeps code tidy.
func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeInt64 reuses the uint routine since casting keeps the sign bits intact.
func (w *binWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

// writeVarUint uses varints to keep counts and lens compact.
func (w *binWriter) writeVarUint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf.Write(tmp[:n])
}

// writeAmount keeps amount scaling consistent via a single call site.
func (w *binWriter) writeAmount(v Amount) {
	w.writeInt64(int64(v))
}

// writeString prefixes its length then dumps UTF-8 directly.
func (w *binWriter) writeString(s string) {
	w.writeVarUint(uint64(len(s)))
	w.buf.WriteString(s)
}

// writeAddress canonicalizes the address before writing, so later parsing is easy.
func (w *binWriter) writeAddress(a sdk.Address) {
	w.writeString(AddressToString(a))
}

// writeAsset just dumps the ticker string, nothing fancy but consistent.
func (w *binWriter) writeAsset(a sdk.Asset) {
	w.writeString(AssetToString(a))
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type binReader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errors.New("unexpected EOF")
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readInt64() (int64, error) {
	v, err := r.readUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (r *binReader) readVarUint() (uint64, error) {
	val, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, errors.New("invalid varuint")
	}
	r.pos += n
	return val, nil
}

func (r *binReader) readAmount() (Amount, error) {
	val, err := r.readInt64()
	if err != nil {
		return 0, err
	}
	return Amount(val), nil
}

func (r *binReader) readString() (string, error) {
	l, err := r.readVarUint()
	if err != nil {
		return "", err
	}
	if r.pos+int(l) > len(r.data) {
		return "", errors.New("unexpected EOF")
	}
	s := string(r.data[r.pos : r.pos+int(l)])
	r.pos += int(l)
	return s, nil
}

// ------------------------------------------------------------------
// Entity codecs
// ------------------------------------------------------------------

// EncodeContractConfig serializes the owner/asset/pause singleton.
func EncodeContractConfig(cfg *ContractConfig) []byte {
	w := newWriter()
	w.writeAddress(cfg.Owner)
	w.writeAsset(cfg.Asset)
	w.writeBool(cfg.Paused)
	return w.bytes()
}

// DecodeContractConfig deserializes the config singleton.
func DecodeContractConfig(data []byte) (*ContractConfig, error) {
	r := newReader(data)
	cfg := &ContractConfig{}
	owner, err := r.readString()
	if err != nil {
		return nil, err
	}
	cfg.Owner = sdk.Address(owner)
	asset, err := r.readString()
	if err != nil {
		return nil, err
	}
	cfg.Asset = sdk.Asset(asset)
	if cfg.Paused, err = r.readBool(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EncodeInvestment serializes an investment to a compact binary form.
func EncodeInvestment(inv *Investment) []byte {
	w := newWriter()
	w.writeUint64(inv.ID)
	w.writeString(inv.Name)
	w.writeString(inv.Category)
	w.buf.WriteByte(byte(inv.Status))
	w.writeAmount(inv.FundingTarget)
	w.buf.WriteByte(inv.ExpectedYieldPct)
	w.buf.WriteByte(byte(inv.Grade))
	w.writeInt64(inv.Deadline)
	w.writeAmount(inv.UpvotedAmount)
	w.writeUint64(inv.DownvoteCount)
	w.writeAmount(inv.YieldGenerated)
	w.writeAmount(inv.YieldDistributed)
	w.buf.WriteByte(inv.ExtensionCount)
	w.writeAddress(inv.Creator)
	w.writeInt64(inv.CreatedAt)
	w.writeString(inv.Tx)
	return w.bytes()
}

// DecodeInvestment deserializes an investment record.
func DecodeInvestment(data []byte) (*Investment, error) {
	r := newReader(data)
	inv := &Investment{}
	var err error
	if inv.ID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if inv.Name, err = r.readString(); err != nil {
		return nil, err
	}
	if inv.Category, err = r.readString(); err != nil {
		return nil, err
	}
	statusByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	inv.Status = InvestmentStatus(statusByte)
	if inv.FundingTarget, err = r.readAmount(); err != nil {
		return nil, err
	}
	if inv.ExpectedYieldPct, err = r.readByte(); err != nil {
		return nil, err
	}
	gradeByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	inv.Grade = RiskGrade(gradeByte)
	if inv.Deadline, err = r.readInt64(); err != nil {
		return nil, err
	}
	if inv.UpvotedAmount, err = r.readAmount(); err != nil {
		return nil, err
	}
	if inv.DownvoteCount, err = r.readUint64(); err != nil {
		return nil, err
	}
	if inv.YieldGenerated, err = r.readAmount(); err != nil {
		return nil, err
	}
	if inv.YieldDistributed, err = r.readAmount(); err != nil {
		return nil, err
	}
	if inv.ExtensionCount, err = r.readByte(); err != nil {
		return nil, err
	}
	creator, err := r.readString()
	if err != nil {
		return nil, err
	}
	inv.Creator = sdk.Address(creator)
	if inv.CreatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if inv.Tx, err = r.readString(); err != nil {
		return nil, err
	}
	return inv, nil
}

// EncodeStakeRecord serializes a stake ledger entry.
func EncodeStakeRecord(rec *StakeRecord) []byte {
	w := newWriter()
	w.writeUint64(rec.InvestmentID)
	w.writeAddress(rec.Participant)
	w.writeAmount(rec.Amount)
	w.buf.WriteByte(byte(rec.Direction))
	w.writeBool(rec.Claimed)
	w.writeAmount(rec.ClaimedAmount)
	w.writeInt64(rec.CreatedAt)
	return w.bytes()
}

// DecodeStakeRecord deserializes a stake ledger entry.
func DecodeStakeRecord(data []byte) (*StakeRecord, error) {
	r := newReader(data)
	rec := &StakeRecord{}
	var err error
	if rec.InvestmentID, err = r.readUint64(); err != nil {
		return nil, err
	}
	participant, err := r.readString()
	if err != nil {
		return nil, err
	}
	rec.Participant = sdk.Address(participant)
	if rec.Amount, err = r.readAmount(); err != nil {
		return nil, err
	}
	dirByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	rec.Direction = VoteDirection(dirByte)
	if rec.Claimed, err = r.readBool(); err != nil {
		return nil, err
	}
	if rec.ClaimedAmount, err = r.readAmount(); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	return rec, nil
}

// EncodeYieldRecord serializes the distribution accounting record.
func EncodeYieldRecord(rec *YieldRecord) []byte {
	w := newWriter()
	w.writeUint64(rec.InvestmentID)
	w.writeAmount(rec.Deposited)
	w.writeAmount(rec.Distributed)
	w.writeInt64(rec.LastDepositAt)
	w.writeString(rec.ReportRef)
	return w.bytes()
}

// DecodeYieldRecord deserializes the distribution accounting record.
func DecodeYieldRecord(data []byte) (*YieldRecord, error) {
	r := newReader(data)
	rec := &YieldRecord{}
	var err error
	if rec.InvestmentID, err = r.readUint64(); err != nil {
		return nil, err
	}
	if rec.Deposited, err = r.readAmount(); err != nil {
		return nil, err
	}
	if rec.Distributed, err = r.readAmount(); err != nil {
		return nil, err
	}
	if rec.LastDepositAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if rec.ReportRef, err = r.readString(); err != nil {
		return nil, err
	}
	return rec, nil
}

// EncodeMember serializes a registry entry.
func EncodeMember(m *Member) []byte {
	w := newWriter()
	w.writeAddress(m.Address)
	w.writeBool(m.Active)
	w.writeInt64(m.JoinedAt)
	w.writeInt64(m.DeactivatedAt)
	return w.bytes()
}

// DecodeMember deserializes a registry entry.
func DecodeMember(data []byte) (*Member, error) {
	r := newReader(data)
	m := &Member{}
	addr, err := r.readString()
	if err != nil {
		return nil, err
	}
	m.Address = sdk.Address(addr)
	if m.Active, err = r.readBool(); err != nil {
		return nil, err
	}
	if m.JoinedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	if m.DeactivatedAt, err = r.readInt64(); err != nil {
		return nil, err
	}
	return m, nil
}
