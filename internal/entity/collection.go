package entity

import "slices"

// Collection names a table whose rows own a slug. Slugs are unique per collection.
type Collection string

const (
	CollectionProducts      Collection = "products"
	CollectionCategories    Collection = "categories"
	CollectionBlogPosts     Collection = "blog_posts"
	CollectionColoringPages Collection = "coloring_pages"
)

// Collections lists every collection that owns slugs.
var Collections = []Collection{
	CollectionProducts,
	CollectionCategories,
	CollectionBlogPosts,
	CollectionColoringPages,
}

func (c Collection) Valid() bool {
	return slices.Contains(Collections, c)
}

// Table returns the Postgres table backing the collection.
// Callers must check Valid first; the value is interpolated into SQL.
func (c Collection) Table() string {
	return string(c)
}

func (c Collection) String() string {
	return string(c)
}
