package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/premiumhub/svc/membership"
)

// MembersCollection is the collection holding one document per member.
const MembersCollection = "members"

// mongoMember tolerates documents written by earlier versions of the bot:
// joined_at as a naive ISO string and the payment ref under payment_link_id.
type mongoMember struct {
	ID             string        `bson:"_id"`
	MemberID       string        `bson:"member_id"`
	JoinedAt       bson.RawValue `bson:"joined_at"`
	Expiry         string        `bson:"expiry"`
	LastPaymentRef string        `bson:"last_payment_ref,omitempty"`
	PaymentLinkID  string        `bson:"payment_link_id,omitempty"`
}

func (d mongoMember) record() membership.Record {
	id := d.MemberID
	if id == "" {
		id = d.ID
	}
	ref := d.LastPaymentRef
	if ref == "" {
		ref = d.PaymentLinkID
	}
	rec := membership.Record{MemberID: id, JoinedAt: decodeJoinedAt(d.JoinedAt), LastPaymentRef: ref}
	if exp, err := membership.ParseDate(d.Expiry); err == nil {
		rec.Expiry = exp
	}
	return rec
}

// decodeJoinedAt accepts a BSON datetime or any string parseJoinedAt knows.
func decodeJoinedAt(v bson.RawValue) time.Time {
	switch v.Type {
	case bson.TypeDateTime:
		if t, ok := v.TimeOK(); ok {
			return t.UTC()
		}
	case bson.TypeString:
		if s, ok := v.StringValueOK(); ok {
			return parseJoinedAt(s)
		}
	}
	return time.Time{}
}

// Mongo stores members in a collection keyed by member id.
type Mongo struct {
	coll *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{coll: db.Collection(MembersCollection)}
}

func (s *Mongo) Get(ctx context.Context, memberID string) (*membership.Record, error) {
	var doc mongoMember
	err := s.coll.FindOne(ctx, bson.M{"_id": memberID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, membership.ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	rec := doc.record()
	return &rec, nil
}

// Upsert merges the record fields into the member document, creating it if needed.
func (s *Mongo) Upsert(ctx context.Context, rec *membership.Record) error {
	if rec == nil || rec.MemberID == "" {
		return ErrInvalidRecord
	}

	update := bson.M{"$set": bson.M{
		"member_id":        rec.MemberID,
		"joined_at":        rec.JoinedAt.UTC(),
		"expiry":           rec.Expiry.String(),
		"last_payment_ref": rec.LastPaymentRef,
	}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": rec.MemberID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

// All streams documents through a cursor. Documents that fail to decode
// are yielded with only their id so the caller can report them.
func (s *Mongo) All(ctx context.Context, fn func(membership.Record) error) error {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetBatchSize(200))
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	defer func() { _ = cur.Close(context.WithoutCancel(ctx)) }()

	for cur.Next(ctx) {
		var doc mongoMember
		if err := cur.Decode(&doc); err != nil {
			id, _ := cur.Current.Lookup("_id").StringValueOK()
			doc = mongoMember{ID: id}
		}
		if err := fn(doc.record()); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

// Ping reports whether the backing database is reachable.
func (s *Mongo) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
