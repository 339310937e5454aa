package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ordersvc/internal/domain"
	"ordersvc/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, customer_id, status, total_amount, created_at, updated_at, cancelled_at`

// Insert persists the order and its items in one transaction,
// assigning the identifier and both timestamps.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Second)
	order.CreatedAt = now
	order.UpdatedAt = now

	query := `
		INSERT INTO orders (customer_id, status, total_amount, created_at, updated_at, cancelled_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		order.CustomerID, string(order.Status), order.TotalAmount,
		order.CreatedAt, order.UpdatedAt, order.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	order.ID = uint64(lastInsertID)

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		itemID, err := r.insertItem(ctx, tx, order.Items[i])
		if err != nil {
			return err
		}
		order.Items[i].ID = itemID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order insert: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) insertItem(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (uint64, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint64(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ?`, orderColumns)

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Order not found with ID: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.findItems(ctx, []uint64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// FindByIDForUpdate loads the order row-locked inside the caller's
// transaction, for read-then-write sequences such as cancellation.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint64) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = ? FOR UPDATE`, orderColumns)

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Order not found with ID: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id for update: %w", err)
	}

	items, err := r.findItemsTx(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// FindPage returns the zero-indexed page of orders, optionally
// filtered by status, ordered by id.
func (r *MySQLOrderRepository) FindPage(ctx context.Context, status *domain.OrderStatus, page, size int) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders`, orderColumns)
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, size, page*size)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders page: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uint64, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// FindByStatus returns every order in the given status, unpaginated.
// Used by the promotion sweep; items are not loaded.
func (r *MySQLOrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE status = ?`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("querying orders by status: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateCancelled persists the cancelled state of the order inside the
// caller's transaction, refreshing updated_at.
func (r *MySQLOrderRepository) UpdateCancelled(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	order.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	query := `UPDATE orders SET status = ?, cancelled_at = ?, updated_at = ? WHERE id = ?`
	result, err := tx.ExecContext(ctx, query,
		string(order.Status), order.CancelledAt, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cancelled order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Order not found with ID: %d", order.ID))
	}

	return nil
}

// PromotePending advances the given orders to processing in one
// conditional batch write. Rows whose status changed since they were
// read no longer match the status predicate and are left untouched;
// the count of promoted rows is returned.
func (r *MySQLOrderRepository) PromotePending(ctx context.Context, ids []uint64, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id IN (%s) AND status = ?`,
		placeholders,
	)

	args := make([]interface{}, 0, len(ids)+3)
	args = append(args, string(domain.OrderStatusProcessing), now)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, string(domain.OrderStatusPending))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("promoting pending orders: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderIDs []uint64) (map[uint64][]domain.OrderItem, error) {
	placeholders := strings.Repeat("?,", len(orderIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id IN (%s)
		ORDER BY id
	`, placeholders)

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uint64][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

func (r *MySQLOrderRepository) findItemsTx(ctx context.Context, tx *sql.Tx, orderID uint64) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`

	rows, err := tx.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var cancelledAt sql.NullTime

	err := row.Scan(
		&order.ID, &order.CustomerID, &status, &order.TotalAmount,
		&order.CreatedAt, &order.UpdatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		order.CancelledAt = &t
	}

	return &order, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}
