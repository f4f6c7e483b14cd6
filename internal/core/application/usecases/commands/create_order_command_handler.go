package commands

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// CreateOrderCommandHandler prices an order request against the catalog and
// persists the order with all its lines in one transaction.
//
// Pricing runs before the transaction starts, so a request that cannot be
// priced never touches the orders tables. Once the order is committed the
// branch is notified; notification problems are logged by the notifier and
// never fail the request.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogRepository
	pricing    services.PricingEngine
	fees       DeliveryFeePolicy
	notifier   ports.OrderNotifier
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogRepository,
	fees DeliveryFeePolicy,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    services.NewPricingEngine(),
		fees:       fees,
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle returns the created order with computed totals.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	quote, err := h.pricing.Quote(ctx, cmd.Lines(), h.catalog)
	if err != nil {
		return nil, err
	}

	fee, err := h.fees.Fee(ctx, cmd.BranchID(), quote.Subtotal)
	if err != nil {
		return nil, err
	}

	items, err := itemsFromQuote(quote)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.ClientID(),
		cmd.AddressID(),
		cmd.BranchID(),
		cmd.PaymentMethod(),
		items,
		fee,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", created.ID().String(),
		"branch_id", created.BranchID().String(),
		"total", created.Total().StringFixed(2),
	)

	h.notifier.NewOrder(ctx, ports.NewOrderEvent{
		ID:            created.ID(),
		ClientID:      created.ClientID(),
		BranchID:      created.BranchID(),
		Status:        created.Status(),
		PaymentMethod: created.PaymentMethod(),
		Subtotal:      created.Subtotal(),
		DeliveryFee:   created.DeliveryFee(),
		Total:         created.Total(),
		CreatedAt:     created.CreatedAt(),
		ProductsCount: created.ProductsCount(),
		Timestamp:     time.Now().UTC(),
	})

	return created, nil
}

func itemsFromQuote(quote services.Quote) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		addons := make([]order.AddonSelection, 0, len(line.Addons))
		for _, a := range line.Addons {
			selection, err := order.NewAddonSelection(kernel.NewUUID(), a.AddonID, a.Price)
			if err != nil {
				return nil, err
			}
			addons = append(addons, selection)
		}

		item, err := order.NewItem(kernel.NewUUID(), line.ProductID, line.SizeID, line.Quantity, line.UnitPrice, addons)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
