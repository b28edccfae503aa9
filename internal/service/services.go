package service

import (
	"github.com/deppfellow/storefront/internal/lib/job"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:    NewAuthService(s),
		Product: NewProductService(repos.Product, s.Job, s.Logger),
		Job:     s.Job,
	}, nil
}
