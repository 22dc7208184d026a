package hotline

import "encoding/binary"

// News category kinds, as carried in NewsCategory.Kind.
const (
	NewsKindBundle   uint16 = 2 // a folder containing further categories
	NewsKindCategory uint16 = 3 // a leaf category containing articles
)

// NewsCategory is one entry in a news category listing: a kind, a child
// count, and a Pascal-style name whose offset in the payload depends on the
// kind (bundles carry the name at offset 4, categories at offset 28).
type NewsCategory struct {
	Kind       uint16
	ChildCount uint16
	Name       string
}

// IsBundle reports whether this entry is a folder of further categories.
func (c NewsCategory) IsBundle() bool {
	return c.Kind == NewsKindBundle
}

// DecodeNewsCategory parses a single NewsCategory entry.
func DecodeNewsCategory(buf []byte) (NewsCategory, error) {
	if len(buf) < 4 {
		return NewsCategory{}, &MalformedFieldError{Field: FieldNewsCatListData15, Want: "at least 4 bytes", Got: len(buf)}
	}
	kind := binary.BigEndian.Uint16(buf[0:2])
	childCount := binary.BigEndian.Uint16(buf[2:4])

	offset := 28
	if kind == NewsKindBundle {
		offset = 4
	}
	if offset >= len(buf) {
		return NewsCategory{}, &MalformedFieldError{Field: FieldNewsCatListData15, Want: "name within payload", Got: len(buf)}
	}

	name, _ := DecodePString(buf[offset:])
	return NewsCategory{Kind: kind, ChildCount: childCount, Name: name}, nil
}

// NewsArticleFlavor is one (format, size) pair describing an alternate
// rendering of a news article's body (e.g. "text/plain", "text/html").
type NewsArticleFlavor struct {
	Name string
	Size uint16
}

// NewsArticleSummary is one entry within a NewsArticleList: the metadata
// for a single article, without its body.
type NewsArticleSummary struct {
	ID        uint32
	Date      [8]byte
	ParentID  uint32
	Flags     uint32
	Title     string
	Poster    string
	Flavors   []NewsArticleFlavor
}

// NewsArticleList is the decoded form of the GetNewsArticleList reply body:
// a list id, article count, list name and description, and per-article
// summaries.
type NewsArticleList struct {
	ListID      uint32
	Name        string
	Description string
	Articles    []NewsArticleSummary
}

// DecodeNewsArticleList parses the GetNewsArticleList payload: 32-bit list
// id, 32-bit article count, two PStrings (name, description),
// then per article: 32-bit id, 8 bytes date, 32-bit parent id, 32-bit
// flags, 16-bit flavor count, PString title, PString poster, and
// flavor_count copies of (PString flavor name, 16-bit article size).
func DecodeNewsArticleList(buf []byte) (NewsArticleList, error) {
	if len(buf) < 8 {
		return NewsArticleList{}, &MalformedFieldError{Field: FieldNewsArtListData, Want: "at least 8 bytes", Got: len(buf)}
	}
	listID := binary.BigEndian.Uint32(buf[0:4])
	articleCount := binary.BigEndian.Uint32(buf[4:8])
	offset := 8

	name, n := DecodePString(buf[offset:])
	if n == 0 {
		return NewsArticleList{}, &MalformedFieldError{Field: FieldNewsArtListData, Want: "list name", Got: len(buf) - offset}
	}
	offset += n

	desc, n := DecodePString(buf[offset:])
	if n == 0 {
		return NewsArticleList{}, &MalformedFieldError{Field: FieldNewsArtListData, Want: "list description", Got: len(buf) - offset}
	}
	offset += n

	list := NewsArticleList{ListID: listID, Name: name, Description: desc}

	for i := uint32(0); i < articleCount; i++ {
		if offset+20 > len(buf) {
			break
		}
		var art NewsArticleSummary
		art.ID = binary.BigEndian.Uint32(buf[offset : offset+4])
		copy(art.Date[:], buf[offset+4:offset+12])
		art.ParentID = binary.BigEndian.Uint32(buf[offset+12 : offset+16])
		art.Flags = binary.BigEndian.Uint32(buf[offset+16 : offset+20])
		offset += 20
		if offset+2 > len(buf) {
			break
		}
		flavorCount := binary.BigEndian.Uint16(buf[offset : offset+2])
		offset += 2

		title, n := DecodePString(buf[offset:])
		if n == 0 {
			break
		}
		art.Title = title
		offset += n

		poster, n := DecodePString(buf[offset:])
		if n == 0 {
			break
		}
		art.Poster = poster
		offset += n

		truncated := false
		for f := uint16(0); f < flavorCount; f++ {
			flavorName, n := DecodePString(buf[offset:])
			if n == 0 {
				truncated = true
				break
			}
			offset += n
			if offset+2 > len(buf) {
				truncated = true
				break
			}
			size := binary.BigEndian.Uint16(buf[offset : offset+2])
			offset += 2
			art.Flavors = append(art.Flavors, NewsArticleFlavor{Name: flavorName, Size: size})
		}

		list.Articles = append(list.Articles, art)
		if truncated {
			break
		}
	}

	return list, nil
}
