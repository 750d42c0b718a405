// Package mongo contiene el adaptador de persistencia sobre MongoDB.
package mongo

import (
	"context"
	"fmt"

	"github.com/jhoicas/Employee-api/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client conexión única a MongoDB compartida por los repositorios. Se crea en el arranque
// y se cierra con Disconnect al apagar el servidor.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
}

// Connect abre la conexión usando la configuración de la app y verifica con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(newRegistry()).
		SetAppName("employee-api")
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar MongoDB: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}, nil
}

// Collection devuelve una colección de la base configurada.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping verifica que el servidor primario responda.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Disconnect cierra las conexiones del pool del driver.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("desconectar MongoDB: %w", err)
	}
	return nil
}
