package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// StatsUseCase métricas globales del panel de administración.
type StatsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.AnalyticsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Stats ejecuta los cuatro conteos en paralelo; el primer error cancela el resto.
func (uc *StatsUseCase) Stats(ctx context.Context, admin domain.Tenant) (*dto.AdminStatsDTO, error) {
	if !admin.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var out dto.AdminStatsDTO
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalClients, err = uc.repo.CountUsers(gctx, domain.RoleClient, false)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveClients, err = uc.repo.CountUsers(gctx, domain.RoleClient, true)
		return err
	})
	g.Go(func() (err error) {
		out.TotalProducts, err = uc.repo.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.LowStockProducts, err = uc.repo.CountLowStockProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.WrapPersistence(err)
	}
	return &out, nil
}
