package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-corrgen/internal/fieldgen"
	"go-corrgen/internal/model"
)

func TestValidateRejectsUndeclaredRelationshipTarget(t *testing.T) {
	cfg := model.GeneratorConfig{
		TransactionalData: map[string]model.EntityConfig{
			"orders": {
				Name:    "orders",
				IDField: "order_id",
				Relationships: map[string]model.ReferenceSpec{
					"customer_id": {References: "customers.customer_id"},
				},
			},
		},
	}

	err := validate(cfg, fieldgen.NewRegistry(0))
	require.Error(t, err)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidateRejectsMismatchedIDField(t *testing.T) {
	cfg := model.GeneratorConfig{
		MasterData: map[string]model.EntityConfig{
			"customers": {Name: "customers", IDField: "customer_id"},
		},
		TransactionalData: map[string]model.EntityConfig{
			"orders": {
				Name:    "orders",
				IDField: "order_id",
				Relationships: map[string]model.ReferenceSpec{
					"customer_id": {References: "customers.wrong_field"},
				},
			},
		},
	}

	err := validate(cfg, fieldgen.NewRegistry(0))
	require.Error(t, err)
}

func TestValidateRejectsUnknownFakerMethod(t *testing.T) {
	cfg := model.GeneratorConfig{
		MasterData: map[string]model.EntityConfig{
			"customers": {
				Name:    "customers",
				IDField: "customer_id",
				Schema: map[string]model.FieldDescriptor{
					"name": {Type: model.FieldFaker, Method: "not_a_method"},
				},
			},
		},
	}

	err := validate(cfg, fieldgen.NewRegistry(0))
	require.Error(t, err)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := model.GeneratorConfig{
		MasterData: map[string]model.EntityConfig{
			"customers": {Name: "customers", IDField: "customer_id"},
			"orders":    {Name: "orders", IDField: "order_id", Schema: map[string]model.FieldDescriptor{"total_amount": {Type: model.FieldFloat, Min: 0, Max: 10}}},
		},
		TransactionalData: map[string]model.EntityConfig{
			"payments": {
				Name:    "payments",
				IDField: "payment_id",
				Relationships: map[string]model.ReferenceSpec{
					"order_id": {References: "orders.order_id"},
				},
				DerivedFields: map[string]model.FieldDescriptor{
					"amount": {Type: model.FieldReference, Source: "orders.total_amount", Via: "order_id"},
				},
				DerivedOrder: []string{"amount"},
			},
		},
	}

	require.NoError(t, validate(cfg, fieldgen.NewRegistry(0)))
}

func TestValidateRejectsReferenceFieldWithoutVia(t *testing.T) {
	cfg := model.GeneratorConfig{
		MasterData: map[string]model.EntityConfig{
			"orders": {Name: "orders", IDField: "order_id"},
		},
		TransactionalData: map[string]model.EntityConfig{
			"payments": {
				Name:    "payments",
				IDField: "payment_id",
				DerivedFields: map[string]model.FieldDescriptor{
					"amount": {Type: model.FieldReference, Source: "orders.total_amount"},
				},
				DerivedOrder: []string{"amount"},
			},
		},
	}

	err := validate(cfg, fieldgen.NewRegistry(0))
	require.Error(t, err)
}
