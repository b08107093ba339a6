package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/common"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int64
	}{
		{"", "", 1, 10},
		{"3", "20", 3, 20},
		{"0", "-5", 1, 10},
		{"abc", "1000", 1, 100},
	}
	for _, tt := range tests {
		page, limit := ParsePagination(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page, "page %q", tt.page)
		assert.Equal(t, tt.wantLimit, limit, "limit %q", tt.limit)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
}

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseObjectID(id.Hex(), "videoId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseObjectID("xyz", "videoId")
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
	assert.Equal(t, "videoId is not valid", err.Error())

	assert.Equal(t, primitive.NilObjectID, String2ObjectID("xyz"))
}

func TestToMap_OmitsEmpty(t *testing.T) {
	type doc struct {
		Name  string `bson:"name"`
		Cover string `bson:"cover,omitempty"`
	}
	m, err := ToMap(doc{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "a"}, m)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 MB", FormatBytes(1024*1024))
}

func TestGoProtect(t *testing.T) {
	ran := false
	assert.NotPanics(t, func() {
		GoProtect(func() {
			ran = true
			panic("boom")
		})
	})
	assert.True(t, ran)
}
