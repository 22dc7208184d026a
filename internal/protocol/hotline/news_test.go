package hotline

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNewsCategoryBundle(t *testing.T) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[0:2], NewsKindBundle)
	binary.BigEndian.PutUint16(buf[2:4], 3)
	buf = append(buf, EncodePString("Boards")...)

	cat, err := DecodeNewsCategory(buf)
	require.NoError(t, err)
	assert.True(t, cat.IsBundle())
	assert.Equal(t, uint16(3), cat.ChildCount)
	assert.Equal(t, "Boards", cat.Name)
}

func TestDecodeNewsCategoryLeaf(t *testing.T) {
	buf := make([]byte, 28)
	binary.BigEndian.PutUint16(buf[0:2], NewsKindCategory)
	binary.BigEndian.PutUint16(buf[2:4], 0)
	buf = append(buf, EncodePString("General")...)

	cat, err := DecodeNewsCategory(buf)
	require.NoError(t, err)
	assert.False(t, cat.IsBundle())
	assert.Equal(t, "General", cat.Name)
}

func TestDecodeNewsArticleList(t *testing.T) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], 1)
	binary.BigEndian.PutUint32(buf[4:8], 1)
	buf = append(buf, EncodePString("General")...)
	buf = append(buf, EncodePString("General discussion")...)

	article := make([]byte, 20)
	binary.BigEndian.PutUint32(article[0:4], 100)
	binary.BigEndian.PutUint32(article[12:16], 0)
	binary.BigEndian.PutUint32(article[16:20], 0)
	buf = append(buf, article...)
	flavorCountOffset := len(buf)
	buf = append(buf, 0, 0)
	binary.BigEndian.PutUint16(buf[flavorCountOffset:flavorCountOffset+2], 1)
	buf = append(buf, EncodePString("Welcome")...)
	buf = append(buf, EncodePString("sysop")...)
	buf = append(buf, EncodePString("text/plain")...)
	sizeBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(sizeBuf, 256)
	buf = append(buf, sizeBuf...)

	list, err := DecodeNewsArticleList(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), list.ListID)
	assert.Equal(t, "General", list.Name)
	assert.Equal(t, "General discussion", list.Description)
	require.Len(t, list.Articles, 1)
	assert.Equal(t, uint32(100), list.Articles[0].ID)
	assert.Equal(t, "Welcome", list.Articles[0].Title)
	assert.Equal(t, "sysop", list.Articles[0].Poster)
	require.Len(t, list.Articles[0].Flavors, 1)
	assert.Equal(t, "text/plain", list.Articles[0].Flavors[0].Name)
	assert.Equal(t, uint16(256), list.Articles[0].Flavors[0].Size)
}
