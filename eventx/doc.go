// Package eventx provides typed events and a synchronous in-process bus.
//
//	bus := eventx.NewMemoryBus()
//	eventx.SubscribeTyped(bus, "whatsapp.message.received",
//		func(ctx context.Context, e eventx.TypedEvent[*msgx.IncomingMessage]) error {
//			logx.Info("from %s", e.Data().From)
//			return nil
//		})
//
//	_ = bus.Publish(ctx, eventx.NewEvent("whatsapp.message.received", "whatsapp", msg))
package eventx
