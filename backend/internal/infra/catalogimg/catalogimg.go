// Package catalogimg holds the fixed, code-defined mapping from a
// blog's catalogType key to the set of product images decorating its
// page. Read-only: there is deliberately no mutation path and no
// database table behind it.
package catalogimg

import "sort"

// ImageSet lists the display images for one catalog type. Paths are
// relative to the static image root served by the frontend.
type ImageSet struct {
	Key    string   `json:"key"`
	Folder string   `json:"folder"`
	Images []string `json:"images"`
}

var imageSets = map[string]ImageSet{
	"creamTube": {
		Key:    "creamTube",
		Folder: "catalog/cream-tube",
		Images: []string{"tube-01.webp", "tube-02.webp", "tube-03.webp"},
	},
	"jar": {
		Key:    "jar",
		Folder: "catalog/cream-jar",
		Images: []string{"jar-01.webp", "jar-02.webp", "jar-03.webp", "jar-04.webp"},
	},
	"pumpBottle": {
		Key:    "pumpBottle",
		Folder: "catalog/pump-bottle",
		Images: []string{"pump-01.webp", "pump-02.webp", "pump-03.webp"},
	},
	"sprayBottle": {
		Key:    "sprayBottle",
		Folder: "catalog/spray-bottle",
		Images: []string{"spray-01.webp", "spray-02.webp"},
	},
	"dropperBottle": {
		Key:    "dropperBottle",
		Folder: "catalog/dropper-bottle",
		Images: []string{"dropper-01.webp", "dropper-02.webp"},
	},
	"foilBag": {
		Key:    "foilBag",
		Folder: "catalog/foil-bag",
		Images: []string{"bag-01.webp", "bag-02.webp", "bag-03.webp"},
	},
	"box": {
		Key:    "box",
		Folder: "catalog/box",
		Images: []string{"box-01.webp", "box-02.webp", "box-03.webp"},
	},
}

// Lookup returns the image set for a catalog type key. The second
// return is false for unknown or empty keys; blog pages simply render
// without the related-products strip in that case.
func Lookup(key string) (ImageSet, bool) {
	set, ok := imageSets[key]
	return set, ok
}

// Keys returns the known catalog type keys in stable order, for the
// admin form's dropdown.
func Keys() []string {
	keys := make([]string, 0, len(imageSets))
	for key := range imageSets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// All returns every image set in stable key order, for the public
// catalog endpoint.
func All() []ImageSet {
	sets := make([]ImageSet, 0, len(imageSets))
	for _, key := range Keys() {
		sets = append(sets, imageSets[key])
	}
	return sets
}
