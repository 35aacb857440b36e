package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CafeOrderService/pkg/psqlbuilder"
)

const (
	slotsTable  = "slot_bookings"
	ordersTable = "orders"
)

var orderColumns = []string{
	"id",
	"items",
	"total",
	"pickup_date",
	"pickup_time",
	"user_id",
	"user_email",
	"payment_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий счетчиков слотов и заказов (PostgreSQL)
// Если в контексте передана активная транзакция, все запросы идут через неё
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookingCount возвращает число заказов на слот (0, если строки нет)
func (r *Repository) GetBookingCount(ctx context.Context, slot domain.TimeSlot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booked_count").
		From(slotsTable).
		Where(squirrel.Eq{
			"pickup_date": slot.Date,
			"pickup_time": slot.Time,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetBookingCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetBookingCount - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// GetBookingCounts возвращает ненулевые счетчики всех слотов даты по ключу слота
func (r *Repository) GetBookingCounts(ctx context.Context, date domain.CalendarDate) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("pickup_time", "booked_count").
		From(slotsTable).
		Where(squirrel.Eq{"pickup_date": date}).
		Where(squirrel.Gt{"booked_count": 0}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingCounts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		slot := domain.TimeSlot{Date: date}
		var count int
		if err := rows.Scan(&slot.Time, &count); err != nil {
			return nil, fmt.Errorf("%w: GetBookingCounts - scan row: %v", ErrScanRow, err)
		}
		counts[slot.Key()] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookingCounts - rows error: %w", ErrScanRow, err)
	}
	return counts, nil
}

// Reserve атомарно увеличивает счетчик слота, пока он меньше maxOrdersPerSlot
// Условный upsert: если счетчик уже достиг предела, строка не возвращается и
// результатом будет domain.ErrSlotFull
func (r *Repository) Reserve(ctx context.Context, slot domain.TimeSlot, maxOrdersPerSlot int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := reserveQuery(slot, maxOrdersPerSlot)
	if err != nil {
		return fmt.Errorf("%w: Reserve - build upsert query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrSlotFull
	}
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute upsert: %w", ErrExecQuery, err)
	}
	return nil
}

func reserveQuery(slot domain.TimeSlot, maxOrdersPerSlot int) (string, []interface{}, error) {
	return psqlbuilder.Insert(slotsTable).
		Columns("pickup_date", "pickup_time", "booked_count").
		Values(slot.Date, slot.Time, 1).
		Suffix("ON CONFLICT (pickup_date, pickup_time) DO UPDATE "+
			"SET booked_count = "+slotsTable+".booked_count + 1 "+
			"WHERE "+slotsTable+".booked_count < ? "+
			"RETURNING booked_count", maxOrdersPerSlot).
		ToSql()
}

// CreateOrder сохраняет заказ; позиции хранятся в JSONB
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := encodeItems(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder: %v", ErrEncodeItems, err)
	}

	query, args, err := psqlbuilder.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			order.ID,
			string(items),
			order.Total,
			order.PickupDate,
			order.PickupTime,
			order.UserID,
			order.UserEmail,
			order.PaymentStatus,
			order.CreatedAt,
			order.CreatedAt,
		).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - execute insert: %w", ErrExecQuery, err)
	}
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetOrderByID получает заказ по ID или domain.ErrOrderNotFound
func (r *Repository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrderByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrderByID - scan order: %v", ErrScanRow, err)
	}
	return order, nil
}

// GetOrdersByUser заказы пользователя, новые первыми
func (r *Repository) GetOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query, args, err := psqlbuilder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrdersByUser - build select query: %v", ErrBuildQuery, err)
	}
	return r.queryOrders(ctx, "GetOrdersByUser", query, args)
}

// GetOrdersByDate заказы на дату выдачи по времени слота
func (r *Repository) GetOrdersByDate(ctx context.Context, date domain.CalendarDate) ([]*domain.Order, error) {
	query, args, err := psqlbuilder.Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"pickup_date": date}).
		OrderBy("pickup_time ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrdersByDate - build select query: %v", ErrBuildQuery, err)
	}
	return r.queryOrders(ctx, "GetOrdersByDate", query, args)
}

// UpdatePaymentStatus меняет статус оплаты, только если текущий равен from
// Если заказ есть, но статус уже другой, возвращает domain.ErrPaymentStatusConflict
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(ordersTable).
		Set("payment_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "payment_status": from}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - execute update: %w", ErrExecQuery, err)
	}

	// Ни одна строка не обновлена: заказа нет или статус уже изменен
	if _, err := r.GetOrderByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrPaymentStatusConflict
}

func (r *Repository) queryOrders(ctx context.Context, op, query string, args []interface{}) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order     domain.Order
		items     []byte
		userEmail sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&order.ID,
		&items,
		&order.Total,
		&order.PickupDate,
		&order.PickupTime,
		&order.UserID,
		&userEmail,
		&order.PaymentStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Items, err = decodeItems(items)
	if err != nil {
		return nil, err
	}
	order.UserEmail = userEmail.String
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// itemRecord формат позиции заказа в колонке items (JSONB)
type itemRecord struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func encodeItems(items []domain.OrderItem) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, itemRecord{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return json.Marshal(records)
}

func decodeItems(raw []byte) ([]domain.OrderItem, error) {
	var records []itemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(records))
	for _, r := range records {
		items = append(items, domain.OrderItem{
			ProductID: r.ProductID,
			Name:      r.Name,
			Price:     r.Price,
			Quantity:  r.Quantity,
		})
	}
	return items, nil
}
