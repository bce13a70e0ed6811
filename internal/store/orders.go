package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/lib/pq"
)

// CreateOrder persists an order and its items in one transaction and
// decrements product stock for each item. Item prices and the total are
// point-in-time copies taken from the caller and are not re-derived.
// A productId that resolves to no product is kept as a dangling weak
// reference and decrements nothing; a product without enough stock
// fails the whole order with database.ErrInsufficientStock.
func CreateOrder(ctx context.Context, db *sql.DB, order models.Order) (*models.Order, error) {
	var stored *models.Order

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		orderID := newID()

		var created models.Order
		err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (id, user_id, guest_name, guest_email, total_price, status, delivery_address, tracking_number, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
			 RETURNING id, user_id, guest_name, guest_email, total_price, status, delivery_address, tracking_number, created_at`,
			orderID,
			order.UserID,
			order.GuestName,
			order.GuestEmail,
			order.TotalPrice,
			order.Status,
			order.DeliveryAddress,
			order.TrackingNumber,
		).Scan(
			&created.ID,
			&created.UserID,
			&created.GuestName,
			&created.GuestEmail,
			&created.TotalPrice,
			&created.Status,
			&created.DeliveryAddress,
			&created.TrackingNumber,
			&created.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range order.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price)
				 VALUES ($1, $2, $3, $4)`,
				orderID, item.ProductID, item.Quantity, item.Price)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		for _, item := range order.Items {
			if !validID(item.ProductID) {
				continue
			}

			var exists bool
			err := tx.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`,
				item.ProductID).Scan(&exists)
			if err != nil {
				return fmt.Errorf("check product exists: %w", err)
			}
			if !exists {
				continue
			}

			result, err := tx.ExecContext(ctx,
				`UPDATE products
				 SET stock = stock - $1
				 WHERE id = $2
				   AND stock >= $1`,
				item.Quantity, item.ProductID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}

			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}

			if rowsAffected == 0 {
				return database.ErrInsufficientStock
			}
		}

		created.Items = order.Items
		stored = &created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return stored, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id string) (*models.Order, error) {
	if !validID(id) {
		return nil, database.ErrOrderNotFound
	}

	order := &models.Order{}

	query := `
		SELECT id, user_id, guest_name, guest_email, total_price, status, delivery_address, tracking_number, created_at
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.GuestName,
		&order.GuestEmail,
		&order.TotalPrice,
		&order.Status,
		&order.DeliveryAddress,
		&order.TrackingNumber,
		&order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := orderItems(ctx, db, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// ListOrders returns all orders newest first, or one user's orders when
// userID is non-empty.
func ListOrders(ctx context.Context, db *sql.DB, userID string) ([]models.Order, error) {
	query := `
		SELECT id, user_id, guest_name, guest_email, total_price, status, delivery_address, tracking_number, created_at
		FROM orders`
	var args []any

	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []string{}
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.GuestName,
			&order.GuestEmail,
			&order.TotalPrice,
			&order.Status,
			&order.DeliveryAddress,
			&order.TrackingNumber,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	itemsByOrder, err := orderItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, nil
}

// UpdateOrderStatus sets the status unconditionally (any status may
// follow any other) and sets the tracking number only when one is
// supplied.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, id, status, trackingNumber string) (*models.Order, error) {
	if !validID(id) {
		return nil, database.ErrOrderNotFound
	}

	var result sql.Result
	var err error
	if trackingNumber != "" {
		result, err = db.ExecContext(ctx,
			`UPDATE orders SET status = $1, tracking_number = $2 WHERE id = $3`,
			status, trackingNumber, id)
	} else {
		result, err = db.ExecContext(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2`,
			status, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, database.ErrOrderNotFound
	}

	return GetOrder(ctx, db, id)
}

func orderItems(ctx context.Context, db *sql.DB, orderIDs []string) (map[string][]models.OrderItem, error) {
	byOrder := make(map[string][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}

	query := `
		SELECT order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`

	rows, err := db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item models.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return byOrder, nil
}
