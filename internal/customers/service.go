package customers

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

// ConsentedEmails returns the addresses of customers who opted into
// marketing mail. Used to resolve the "consented" campaign audience.
func (s *Service) ConsentedEmails(ctx context.Context, limit int) ([]string, error) {
	consented := true
	list, _, err := s.repo.List(ctx, ListCustomersRequest{
		Consented: &consented,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(list))
	for _, c := range list {
		emails = append(emails, c.Email)
	}
	return emails, nil
}
