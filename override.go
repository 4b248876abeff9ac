package itemadapter

// Record marks a struct type as a declarative record and supplies its
// per-field metadata side table. Either the value or the pointer receiver
// may implement it:
//
//	type Product struct {
//	    Name  string `json:"name"`
//	    Price *Price `json:"price"`
//	}
//
//	func (Product) ItemFields() itemadapter.FieldTable {
//	    return itemadapter.FieldTable{
//	        "name": {"serializer": "str", "limit": 100},
//	    }
//	}
//
// ItemFields is called on a zero value and must not depend on field contents.
// Keys are external field names (json tag name, or the Go field name).
type Record interface {
	ItemFields() FieldTable
}
