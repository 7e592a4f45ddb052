package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

const expensesCollection = "expenses"

// ExpenseRepository persists expenses and serves the per-category summary.
type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{coll: db.Collection(expensesCollection)}
}

type mongoExpense struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Category   string             `bson:"category"`
	Amount     float64            `bson:"amount"`
	Date       time.Time          `bson:"date"`
	Notes      string             `bson:"notes,omitempty"`
	RecordedBy string             `bson:"recorded_by"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func toMongoExpense(e *domain.Expense) mongoExpense {
	return mongoExpense{
		Title:      e.Title,
		Category:   e.Category,
		Amount:     e.Amount,
		Date:       e.Date,
		Notes:      e.Notes,
		RecordedBy: e.RecordedBy,
		CreatedAt:  e.CreatedAt,
	}
}

func (me mongoExpense) toDomain() *domain.Expense {
	return &domain.Expense{
		ID:         me.ID.Hex(),
		Title:      me.Title,
		Category:   me.Category,
		Amount:     me.Amount,
		Date:       me.Date,
		Notes:      me.Notes,
		RecordedBy: me.RecordedBy,
		CreatedAt:  me.CreatedAt,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoExpense(e))
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id string) (*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoExpense
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return me.toDomain(), nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer cur.Close(ctx)

	var expenses []*domain.Expense
	for cur.Next(ctx) {
		var me mongoExpense
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoExpense(e))
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// SummaryByCategory aggregates amount totals per category, largest first.
func (r *ExpenseRepository) SummaryByCategory(ctx context.Context) ([]ports.CategoryTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	defer cur.Close(ctx)

	var totals []ports.CategoryTotal
	for cur.Next(ctx) {
		var row struct {
			Category string  `bson:"_id"`
			Total    float64 `bson:"total"`
			Count    int64   `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode summary row: %w", err)
		}
		totals = append(totals, ports.CategoryTotal{Category: row.Category, Total: row.Total, Count: row.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	return totals, nil
}
