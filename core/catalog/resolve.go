package catalog

import "context"

// IDResolver maps a sky position to a catalog identifier. Not-found is a
// valid outcome, not an error; an error means the resolver itself failed.
type IDResolver interface {
	Resolve(ctx context.Context, ra, dec float64) (id string, found bool, err error)
}

// AssignIDs fills in missing identifiers from r. Records that already
// carry an ID are left alone, as are positions the resolver does not
// know. Resolver failures abort, since a half-labeled catalog is worse
// than an unlabeled one.
func AssignIDs(ctx context.Context, recs []FlareRecord, r IDResolver) error {
	for i := range recs {
		if recs[i].ID != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		id, found, err := r.Resolve(ctx, recs[i].RA, recs[i].Dec)
		if err != nil {
			return err
		}
		if found {
			recs[i].ID = id
		}
	}
	return nil
}
