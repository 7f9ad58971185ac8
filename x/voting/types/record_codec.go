package types

import (
	"encoding/binary"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/crypto/tmhash"
)

// Records are stored as: 8 byte type discriminator, fixed fields in declared order,
// then the variable length fields each with a 4 byte little endian length prefix.

const (
	discriminatorLen = 8
	recordVersion    = uint8(1)
)

var (
	configDiscriminator   = discriminator("Config")
	voterDiscriminator    = discriminator("Voter")
	proposalDiscriminator = discriminator("Proposal")
	voteDiscriminator     = discriminator("Vote")
)

func discriminator(name string) []byte {
	return tmhash.Sum([]byte("record:" + name))[:discriminatorLen]
}

func MarshalConfig(c Config) []byte {
	w := newRecordWriter(configDiscriminator)
	w.bytes(c.Authority)
	w.uint16(c.NextProposalID)
	w.uint64(c.TotalStaked)
	w.int64(c.UnstakePeriod)
	w.string(c.StakeDenom)
	w.uint8(recordVersion)
	return w.buf
}

func UnmarshalConfig(bz []byte) (Config, error) {
	r, err := newRecordReader(bz, configDiscriminator)
	if err != nil {
		return Config{}, err
	}
	c := Config{
		Authority:      r.bytes(),
		NextProposalID: r.uint16(),
		TotalStaked:    r.uint64(),
		UnstakePeriod:  r.int64(),
		StakeDenom:     r.string(),
	}
	r.version()
	return c, r.finish()
}

func MarshalVoter(v Voter) []byte {
	w := newRecordWriter(voterDiscriminator)
	w.bytes(v.Owner)
	w.uint64(v.StakedAmount)
	w.uint64(v.Points)
	w.int64(v.UnstakeCompleteTS)
	w.uint64(v.AmountUnstaking)
	w.uint8(recordVersion)
	return w.buf
}

func UnmarshalVoter(bz []byte) (Voter, error) {
	r, err := newRecordReader(bz, voterDiscriminator)
	if err != nil {
		return Voter{}, err
	}
	v := Voter{
		Owner:             r.bytes(),
		StakedAmount:      r.uint64(),
		Points:            r.uint64(),
		UnstakeCompleteTS: r.int64(),
		AmountUnstaking:   r.uint64(),
	}
	r.version()
	return v, r.finish()
}

// MarshalProposal encodes p into exactly p.Space() bytes.
func MarshalProposal(p Proposal) []byte {
	w := &recordWriter{buf: make([]byte, 0, p.Space())}
	w.buf = append(w.buf, proposalDiscriminator...)
	w.uint16(p.ID)
	w.uint64(p.TotalVotes)
	w.uint64(p.QuorumVotes)
	w.int64(p.CreatedTS)
	w.int64(p.EndingTS)
	w.uint64(p.Points)
	w.uint8(recordVersion)
	w.string(p.Title)
	w.string(p.Description)
	w.uint32(uint32(len(p.Options)))
	for _, o := range p.Options {
		w.string(o)
	}
	w.uint32(uint32(len(p.OptionVotes)))
	for _, v := range p.OptionVotes {
		w.uint64(v)
	}
	return w.buf
}

func UnmarshalProposal(bz []byte) (Proposal, error) {
	r, err := newRecordReader(bz, proposalDiscriminator)
	if err != nil {
		return Proposal{}, err
	}
	p := Proposal{
		ID:          r.uint16(),
		TotalVotes:  r.uint64(),
		QuorumVotes: r.uint64(),
		CreatedTS:   r.int64(),
		EndingTS:    r.int64(),
		Points:      r.uint64(),
	}
	r.version()
	p.Title = r.string()
	p.Description = r.string()
	if n := r.length(4); n > 0 {
		p.Options = make([]string, n)
		for i := range p.Options {
			p.Options[i] = r.string()
		}
	}
	if n := r.length(8); n > 0 {
		p.OptionVotes = make([]uint64, n)
		for i := range p.OptionVotes {
			p.OptionVotes[i] = r.uint64()
		}
	}
	return p, r.finish()
}

func MarshalVote(v Vote) []byte {
	w := newRecordWriter(voteDiscriminator)
	w.bytes(v.Voter)
	w.uint16(v.ProposalID)
	w.uint8(v.Option)
	w.uint64(v.Weight)
	w.int64(v.Timestamp)
	w.uint8(recordVersion)
	return w.buf
}

func UnmarshalVote(bz []byte) (Vote, error) {
	r, err := newRecordReader(bz, voteDiscriminator)
	if err != nil {
		return Vote{}, err
	}
	v := Vote{
		Voter:      r.bytes(),
		ProposalID: r.uint16(),
		Option:     r.uint8(),
		Weight:     r.uint64(),
		Timestamp:  r.int64(),
	}
	r.version()
	return v, r.finish()
}

type recordWriter struct {
	buf []byte
}

func newRecordWriter(disc []byte) *recordWriter {
	return &recordWriter{buf: append([]byte{}, disc...)}
}

func (w *recordWriter) uint8(v uint8) { w.buf = append(w.buf, v) }

func (w *recordWriter) uint16(v uint16) {
	var bz [2]byte
	binary.LittleEndian.PutUint16(bz[:], v)
	w.buf = append(w.buf, bz[:]...)
}

func (w *recordWriter) uint32(v uint32) {
	var bz [4]byte
	binary.LittleEndian.PutUint32(bz[:], v)
	w.buf = append(w.buf, bz[:]...)
}

func (w *recordWriter) uint64(v uint64) {
	var bz [8]byte
	binary.LittleEndian.PutUint64(bz[:], v)
	w.buf = append(w.buf, bz[:]...)
}

func (w *recordWriter) int64(v int64) { w.uint64(uint64(v)) }

func (w *recordWriter) bytes(v []byte) {
	w.uint32(uint32(len(v)))
	w.buf = append(w.buf, v...)
}

func (w *recordWriter) string(v string) { w.bytes([]byte(v)) }

// recordReader decodes sequentially. The first error sticks and later reads return zero values.
type recordReader struct {
	buf []byte
	err error
}

func newRecordReader(bz, disc []byte) (*recordReader, error) {
	if len(bz) < discriminatorLen {
		return nil, sdkerrors.Wrap(ErrCorruptRecord, "too short")
	}
	if string(bz[:discriminatorLen]) != string(disc) {
		return nil, sdkerrors.Wrap(ErrCorruptRecord, "discriminator mismatch")
	}
	return &recordReader{buf: bz[discriminatorLen:]}, nil
}

func (r *recordReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf) < n {
		r.err = sdkerrors.Wrap(ErrCorruptRecord, "unexpected end of record")
		return nil
	}
	v := r.buf[:n]
	r.buf = r.buf[n:]
	return v
}

func (r *recordReader) uint8() uint8 {
	if bz := r.take(1); bz != nil {
		return bz[0]
	}
	return 0
}

func (r *recordReader) uint16() uint16 {
	if bz := r.take(2); bz != nil {
		return binary.LittleEndian.Uint16(bz)
	}
	return 0
}

func (r *recordReader) uint32() uint32 {
	if bz := r.take(4); bz != nil {
		return binary.LittleEndian.Uint32(bz)
	}
	return 0
}

func (r *recordReader) uint64() uint64 {
	if bz := r.take(8); bz != nil {
		return binary.LittleEndian.Uint64(bz)
	}
	return 0
}

func (r *recordReader) int64() int64 { return int64(r.uint64()) }

// length reads a list length prefix and rejects lists that cannot fit the remaining bytes.
func (r *recordReader) length(minElemSize int) int {
	n := r.uint32()
	if r.err != nil {
		return 0
	}
	if uint64(n)*uint64(minElemSize) > uint64(len(r.buf)) {
		r.err = sdkerrors.Wrap(ErrCorruptRecord, "list length")
		return 0
	}
	return int(n)
}

func (r *recordReader) bytes() []byte {
	n := r.length(1)
	if r.err != nil || n == 0 {
		return nil
	}
	return append([]byte{}, r.take(n)...)
}

func (r *recordReader) string() string { return string(r.bytes()) }

func (r *recordReader) version() {
	if v := r.uint8(); r.err == nil && v != recordVersion {
		r.err = sdkerrors.Wrapf(ErrCorruptRecord, "unsupported version %d", v)
	}
}

func (r *recordReader) finish() error {
	if r.err != nil {
		return r.err
	}
	if len(r.buf) != 0 {
		return sdkerrors.Wrap(ErrCorruptRecord, "trailing bytes")
	}
	return nil
}
