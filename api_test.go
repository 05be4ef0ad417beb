package facet_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/zoobzio/facet"
)

type Order struct {
	ID     int     `json:"id"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

type Customer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Orders []Order
}

// SupportsMethod exposes "initials" to Projector.Call.
func (c Customer) SupportsMethod(name string) bool { return name == "initials" }

func (c Customer) Invoke(string, ...any) (any, error) {
	return c.Name[:1], nil
}

func kinds() (customers, orders *facet.Kind) {
	orders = facet.NewKind("order", func(*facet.Projector) facet.Modes {
		return facet.Modes{
			facet.ModeDefault: facet.Fields("id", "total", "status"),
			facet.ModeMinimal: facet.Fields("id"),
		}
	})
	customers = facet.NewKind("customer", func(p *facet.Projector) facet.Modes {
		orderList := facet.Lazy("orders", func() (any, error) {
			v, err := p.Attribute("Orders")
			if err != nil {
				return nil, err
			}
			return orders.Collection(v), nil
		})
		return facet.Modes{
			facet.ModeDefault: facet.Fields("id", "name", orderList),
			facet.ModeMinimal: facet.Fields("id", orderList),
			"contact":         facet.Fields(facet.Masked("email", facet.MaskEmail)),
		}
	})
	return customers, orders
}

func ada() Customer {
	return Customer{
		ID:    1,
		Name:  "Ada",
		Email: "ada@example.com",
		Orders: []Order{
			{ID: 10, Total: 9.5, Status: "paid"},
			{ID: 11, Total: 20, Status: "open"},
		},
	}
}

func TestAPI_NestedCollectionFollowsParentMode(t *testing.T) {
	customers, _ := kinds()

	rec, err := customers.New(ada()).Minimal().Project(context.Background())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	want := map[string]any{
		"id": 1,
		"orders": []any{
			map[string]any{"id": 10},
			map[string]any{"id": 11},
		},
	}
	if got := rec.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Project() = %v, want %v", got, want)
	}
}

func TestAPI_WithMode(t *testing.T) {
	customers, _ := kinds()

	rec, err := customers.New(ada()).Minimal().With("Contact").Except("orders").Project(context.Background())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	want := map[string]any{"id": 1, "email": "a***@example.com"}
	if got := rec.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Project() = %v, want %v", got, want)
	}
}

func TestAPI_Call(t *testing.T) {
	customers, _ := kinds()
	p := customers.New(ada())

	if _, err := p.Call("withContact"); err != nil {
		t.Fatalf("Call(withContact) error: %v", err)
	}
	if got := p.ActiveModes(); !reflect.DeepEqual(got, []string{"default", "contact"}) {
		t.Errorf("ActiveModes() = %v", got)
	}

	v, err := p.Call("initials")
	if err != nil || v != "A" {
		t.Errorf("Call(initials) = %v, %v, want A", v, err)
	}

	_, err = p.Call("fancy")
	var ume *facet.UnknownModeError
	if !errors.As(err, &ume) || ume.Mode != "fancy" {
		t.Errorf("Call(fancy) error = %v, want *UnknownModeError", err)
	}
}

func TestAPI_CollectionOfCustomers(t *testing.T) {
	customers, _ := kinds()
	other := ada()
	other.ID, other.Name, other.Orders = 2, "Grace", nil

	recs, err := customers.Collection([]Customer{ada(), other}).
		Only("name").
		AdditionalField("source", "crm").
		Project(context.Background())
	if err != nil {
		t.Fatalf("Project() error: %v", err)
	}

	want := []map[string]any{
		{"name": "Ada", "source": "crm"},
		{"name": "Grace", "source": "crm"},
	}
	for i, rec := range recs {
		if got := rec.Map(); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("recs[%d] = %v, want %v", i, got, want[i])
		}
	}
}
