package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func decodeMember(t *testing.T, doc bson.M) mongoMember {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var m mongoMember
	require.NoError(t, bson.Unmarshal(raw, &m))
	return m
}

func TestMongoMemberDecodesLegacyDocument(t *testing.T) {
	t.Parallel()

	m := decodeMember(t, bson.M{
		"_id":             "42",
		"joined_at":       "2024-01-01T10:20:30.123456",
		"expiry":          "2024-01-31",
		"payment_link_id": "plink_old",
	})

	rec := m.record()
	assert.Equal(t, "42", rec.MemberID)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 20, 30, 123456000, time.UTC), rec.JoinedAt)
	assert.Equal(t, "2024-01-31", rec.Expiry.String())
	assert.Equal(t, "plink_old", rec.LastPaymentRef)
	assert.True(t, rec.Valid())
}

func TestMongoMemberDecodesJoinedAt(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		joinedAt any
		want     time.Time
	}{
		{name: "datetime", joinedAt: want, want: want},
		{name: "rfc3339", joinedAt: "2024-03-05T10:00:00+02:00", want: want},
		{name: "naive without fraction", joinedAt: "2024-03-05T08:00:00", want: want},
		{name: "garbage", joinedAt: "yesterday", want: time.Time{}},
		{name: "wrong type", joinedAt: int32(7), want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := decodeMember(t, bson.M{"_id": "1", "member_id": "1", "joined_at": tt.joinedAt, "expiry": "2024-04-04"})
			assert.True(t, tt.want.Equal(m.record().JoinedAt), "got %v", m.record().JoinedAt)
		})
	}
}

func TestMongoMemberPrefersCurrentFields(t *testing.T) {
	t.Parallel()

	m := decodeMember(t, bson.M{
		"_id":              "legacy-id",
		"member_id":        "7",
		"joined_at":        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"expiry":           "not-a-date",
		"last_payment_ref": "plink_new",
		"payment_link_id":  "plink_old",
	})

	rec := m.record()
	assert.Equal(t, "7", rec.MemberID)
	assert.Equal(t, "plink_new", rec.LastPaymentRef)
	assert.True(t, rec.Expiry.IsZero())
}
