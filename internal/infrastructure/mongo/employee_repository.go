package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Employee-api/internal/domain"
	"github.com/jhoicas/Employee-api/internal/domain/entity"
	"github.com/jhoicas/Employee-api/internal/domain/repository"
	"github.com/jhoicas/Employee-api/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// employeeDocument forma del documento en la colección.
type employeeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Position   string             `bson:"position"`
	Department string             `bson:"department"`
	Salary     decimal.Decimal    `bson:"salary"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt  time.Time          `bson:"updatedAt,omitempty"`
}

func (d *employeeDocument) toEntity() *entity.Employee {
	return &entity.Employee{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Position:   d.Position,
		Department: d.Department,
		Salary:     d.Salary,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// EmployeeRepo implementación del puerto EmployeeRepository sobre MongoDB.
type EmployeeRepo struct {
	client       *Client
	coll         *mongo.Collection
	queryTimeout time.Duration
	metrics      *metrics.Metrics
}

// NewEmployeeRepository construye el adaptador de persistencia para funcionarios.
// m puede ser nil (sin métricas).
func NewEmployeeRepository(client *Client, m *metrics.Metrics) *EmployeeRepo {
	return &EmployeeRepo{
		client:       client,
		coll:         client.Collection(client.cfg.Collection),
		queryTimeout: client.cfg.QueryTimeout,
		metrics:      m,
	}
}

// Create persiste un nuevo funcionario y le asigna un ObjectID.
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) (err error) {
	ctx, done := r.begin(ctx, "insert")
	defer func() { done(err) }()

	doc := employeeDocument{
		ID:         primitive.NewObjectID(),
		Name:       employee.Name,
		Position:   employee.Position,
		Department: employee.Department,
		Salary:     employee.Salary,
		CreatedAt:  employee.CreatedAt,
		UpdatedAt:  employee.UpdatedAt,
	}
	if _, err = r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	employee.ID = doc.ID.Hex()
	return nil
}

// GetByID obtiene un funcionario por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (_ *entity.Employee, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, done := r.begin(ctx, "find_one")
	defer func() { done(err) }()

	var doc employeeDocument
	if err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return doc.toEntity(), nil
}

// Update aplica el patch con un único findOneAndUpdate y devuelve el documento resultante.
func (r *EmployeeRepo) Update(ctx context.Context, id string, patch entity.EmployeePatch) (_ *entity.Employee, err error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, done := r.begin(ctx, "update")
	defer func() { done(err) }()

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Position != nil {
		set["position"] = *patch.Position
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if !patch.UpdatedAt.IsZero() {
		set["updatedAt"] = patch.UpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return doc.toEntity(), nil
}

// List lista todos los funcionarios en orden de inserción (_id ascendente).
func (r *EmployeeRepo) List(ctx context.Context) (_ []*entity.Employee, err error) {
	ctx, done := r.begin(ctx, "find")
	defer func() { done(err) }()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	var docs []employeeDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("scan employees: %w", err)
	}
	list := make([]*entity.Employee, 0, len(docs))
	for i := range docs {
		list = append(list, docs[i].toEntity())
	}
	return list, nil
}

// Delete elimina un funcionario por ID.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	ctx, done := r.begin(ctx, "delete")
	defer func() { done(err) }()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping verifica la conexión con el servidor.
func (r *EmployeeRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.client.Ping(ctx)
}

// begin aplica el timeout de consulta y devuelve la función que registra duración y error.
func (r *EmployeeRepo) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, cancel := r.withTimeout(ctx)
	start := time.Now()
	return ctx, func(err error) {
		cancel()
		if r.metrics == nil {
			return
		}
		r.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			r.metrics.DBErrors.WithLabelValues(op).Inc()
		}
	}
}

func (r *EmployeeRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// parseID convierte el id hexadecimal en ObjectID; un formato inválido es error del cliente.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}
