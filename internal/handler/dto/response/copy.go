package response

import (
	"github.com/jinzhu/copier"
)

// copyAll maps read-model views onto response structs field by field.
func copyAll[V any, R any](views []*V) ([]*R, error) {
	out := make([]*R, len(views))
	for i, v := range views {
		r := new(R)
		if err := copier.Copy(r, v); err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func copyOne[V any, R any](view *V) (*R, error) {
	r := new(R)
	if err := copier.Copy(r, view); err != nil {
		return nil, err
	}
	return r, nil
}
