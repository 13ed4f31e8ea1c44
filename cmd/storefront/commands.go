package main

import (
	"context"
	"fmt"
	"os"

	"storefront/checkout"
	"storefront/server"
)

type serveCmd struct{}

func (s *serveCmd) Run(ctx context.Context, a *app) error {
	return server.RunServer(ctx, server.Config{
		GRPCPort: a.cfg.Server.Port,
		HTTPPort: a.cfg.Server.HTTPPort,
	}, a.svc, a.logger.Named("server"))
}

type showCmd struct{}

func (c *showCmd) Run(a *app, st style) error {
	renderCart(os.Stdout, a.svc.Cart(), st)
	return nil
}

type addCmd struct {
	ProductID string `arg:"" help:"Catalog product id."`
	Qty       int    `help:"Units to add." default:"1"`
}

func (c *addCmd) Run(ctx context.Context, a *app, st style) error {
	view, err := a.svc.AddItem(ctx, server.AddItemRequest{ProductID: c.ProductID, Quantity: c.Qty})
	if err != nil {
		return err
	}
	renderCart(os.Stdout, view, st)
	return nil
}

type updateCmd struct {
	ID  string `arg:"" help:"Cart line id."`
	Qty int    `arg:"" help:"New quantity."`
}

func (c *updateCmd) Run(ctx context.Context, a *app, st style) error {
	renderCart(os.Stdout, a.svc.UpdateQuantity(ctx, c.ID, c.Qty), st)
	return nil
}

type removeCmd struct {
	ID string `arg:"" help:"Cart line id."`
}

func (c *removeCmd) Run(ctx context.Context, a *app, st style) error {
	renderCart(os.Stdout, a.svc.RemoveItem(ctx, c.ID), st)
	return nil
}

type clearCmd struct{}

func (c *clearCmd) Run(ctx context.Context, a *app, st style) error {
	renderCart(os.Stdout, a.svc.Clear(ctx), st)
	return nil
}

type purgeCmd struct{}

func (c *purgeCmd) Run(ctx context.Context, a *app) error {
	if err := a.adapter.Purge(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "purged %s\n", a.adapter.Key())
	return nil
}

type productsCmd struct {
	Offset int `help:"Skip this many products."`
	Limit  int `help:"Products per page (0 uses the default page size)."`
}

func (c *productsCmd) Run(a *app, st style) error {
	renderProducts(os.Stdout, a.svc.Products(c.Offset, c.Limit), st)
	return nil
}

type orderCmd struct {
	ProductID string `arg:"" help:"Catalog product id."`
	Qty       int    `help:"Units to order." default:"1"`
}

func (c *orderCmd) Run(a *app) error {
	order, err := a.svc.QuickOrder(c.ProductID, c.Qty)
	if err != nil {
		return err
	}
	renderOrder(os.Stdout, order)
	return nil
}

type checkoutCmd struct {
	Name     string `help:"Full name." required:""`
	Phone    string `help:"Phone number." required:""`
	Address  string `help:"Delivery address." required:""`
	Location string `help:"Location description."`
	MapLink  string `name:"map-link" help:"Map link for the location."`
}

func (c *checkoutCmd) Run(a *app) error {
	order, err := a.svc.Checkout(checkout.Contact{
		Name:     c.Name,
		Phone:    c.Phone,
		Address:  c.Address,
		Location: c.Location,
		MapLink:  c.MapLink,
	})
	if err != nil {
		return err
	}
	renderOrder(os.Stdout, order)
	return nil
}
