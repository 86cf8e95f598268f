package models

import "sort"

// Classification is the category assigned to one transaction by a classifier.
type Classification struct {
	CategoryID   int    `json:"category_id" yaml:"category_id"`
	CategoryName string `json:"category_name" yaml:"category_name"`
	Reason       string `json:"reason" yaml:"reason"`
	RawResponse  string `json:"-" yaml:"-"`
}

// Category ids of the fixed label set.
const (
	CategoryIncome = iota
	CategoryFood
	CategoryTransport
	CategoryHousing
	CategoryShopping
	CategoryEntertainment
	CategoryOther
)

// CategoryLabels is the closed label set a classifier may answer with.
var CategoryLabels = map[int]string{
	CategoryIncome:        "收入",
	CategoryFood:          "餐饮",
	CategoryTransport:     "交通",
	CategoryHousing:       "居住",
	CategoryShopping:      "购物",
	CategoryEntertainment: "娱乐",
	CategoryOther:         "其他",
}

// CategoryLabel returns the label for id.
func CategoryLabel(id int) (string, bool) {
	name, ok := CategoryLabels[id]
	return name, ok
}

// CategoryIDs returns the label ids in ascending order.
func CategoryIDs() []int {
	ids := make([]int, 0, len(CategoryLabels))
	for id := range CategoryLabels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
