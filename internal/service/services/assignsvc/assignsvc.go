package assignsvc

import (
	"context"
	"sync/atomic"

	"github.com/quickbite/oms/internal/dal/interfaces/ideliveryuserrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/iorderrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/deliveryuser"
	"github.com/quickbite/oms/internal/service/models/order"
	"github.com/quickbite/oms/pkg/apperr"
	"golang.org/x/sync/errgroup"
)

// reassignConcurrency bounds how many orders one worker pass matches at a
// time; every Assign is idempotent so overlap with inline assignment is safe.
const reassignConcurrency = 4

// AssignService matches committed orders to couriers by service area.
type AssignService struct {
	uowFactory func() unitOfWork
}

type unitOfWork interface {
	Orders() iorderrepo.IOrderRepository
	Vendors() ivendorrepo.IVendorRepository
	DeliveryUsers() ideliveryuserrepo.IDeliveryUserRepository
}

// option is a function that configures the AssignService.
type option func(*AssignService)

// MustNewAssignService creates a new AssignService.
func MustNewAssignService(opts ...option) *AssignService {
	s := &AssignService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the AssignService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *AssignService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// Assign picks a courier for the order: verified, available and serving the
// vendor's pincode. Candidates are taken in stored order with no distance
// ranking. The conditional update keeps the call idempotent; when another
// call won earlier, the already assigned courier is returned unchanged.
func (s *AssignService) Assign(ctx context.Context, orderRowID, vendorID int64) (*deliveryuser.DeliveryUser, error) {
	work := s.uowFactory()

	v, err := work.Vendors().GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	candidates, err := work.DeliveryUsers().FindAssignable(ctx, v.Pincode)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperr.NotFound("no delivery user currently available")
	}

	courier := candidates[0]
	won, err := work.Orders().AssignDeliveryUser(ctx, orderRowID, courier.ID)
	if err != nil {
		return nil, err
	}
	if won {
		return &courier, nil
	}

	return s.assigned(ctx, work, orderRowID)
}

// assigned returns the courier already linked to the order.
func (s *AssignService) assigned(ctx context.Context, work unitOfWork, orderRowID int64) (*deliveryuser.DeliveryUser, error) {
	orders, err := work.Orders().Query(ctx, &order.QueryOrdersModel{Ids: []int64{orderRowID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("order %d not found", orderRowID)
	}
	if orders[0].DeliveryUserID == nil {
		return nil, apperr.NotFound("no delivery user currently available")
	}

	return work.DeliveryUsers().GetByID(ctx, *orders[0].DeliveryUserID)
}

// ReassignPending retries assignment for WAITING orders that have no
// courier yet, returning how many were matched. Used by the assigner
// worker so a crash or an empty candidate set never strands an order.
// Orders are processed with bounded concurrency; a missing candidate is
// not an error, the order just stays pending for the next pass.
func (s *AssignService) ReassignPending(ctx context.Context, batchSize int) (int, error) {
	work := s.uowFactory()

	pending, err := work.Orders().Query(ctx, &order.QueryOrdersModel{
		Unassigned: true,
		Statuses:   []order.Status{order.StatusWaiting},
		Limit:      batchSize,
	})
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reassignConcurrency)

	var matched atomic.Int64
	for _, o := range pending {
		g.Go(func() error {
			if _, err := s.Assign(ctx, o.ID, o.VendorID); err != nil {
				if apperr.IsNotFound(err) {
					return nil
				}

				return err
			}
			matched.Add(1)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(matched.Load()), err
	}

	return int(matched.Load()), nil
}
