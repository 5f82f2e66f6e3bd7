package pv

import "context"

// RemoveOriginals deletes imported photos from the source they came from.
// When the source needs the user's consent, the result carries a grant that
// is completed with ConfirmRemoval.
func (s *VaultService) RemoveOriginals(ctx context.Context, items []SourcePhoto) (*RemovalResult, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	refs := make([]string, len(items))
	for i, item := range items {
		refs[i] = item.Ref
	}

	result, err := s.source.Delete(ctx, refs)
	if err != nil {
		return nil, err
	}
	if result.Grant != "" {
		s.logger.Info("removal of originals awaits confirmation", "grant", result.Grant, "pending", result.Pending)
	}
	s.logger.Info("originals removed", "deleted", result.Deleted, "failed", result.Failed)
	return result, nil
}

// ConfirmRemoval reports the user's answer for a pending removal grant.
func (s *VaultService) ConfirmRemoval(ctx context.Context, grant string, granted bool) (*RemovalResult, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	result, err := s.source.Resume(ctx, grant, granted)
	if err != nil {
		return nil, err
	}
	s.logger.Info("removal confirmation handled", "grant", grant, "granted", granted, "deleted", result.Deleted, "declined", result.Declined)
	return result, nil
}

// ListSource returns the photos available for import.
func (s *VaultService) ListSource(ctx context.Context) ([]SourcePhoto, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.source.List(ctx)
}
