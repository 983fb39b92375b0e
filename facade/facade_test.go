package facade

import (
	"testing"

	"github.com/chirino/qpid-jms-go/destination"
	"github.com/chirino/qpid-jms-go/internal/wire"
)

type fakeConnection struct{ preferred string }

func (c fakeConnection) PreferredObjectContentType() string { return c.preferred }

type fakeConsumer struct{ kind destination.Kind }

func (c fakeConsumer) DestinationKind() destination.Kind { return c.kind }

func TestNewForSendDefaults(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)

	if !f.GetDurable() {
		t.Fatal("want durable true by default")
	}
	if f.GetPriority() != 4 {
		t.Fatalf("want default priority 4, got %d", f.GetPriority())
	}
	if f.GetTtl() != 0 {
		t.Fatalf("want default ttl 0, got %d", f.GetTtl())
	}
	if f.GetDeliveryCount() != 1 {
		t.Fatalf("want default delivery count 1, got %d", f.GetDeliveryCount())
	}
	if f.GetRedelivered() {
		t.Fatal("want redelivered false by default")
	}
	if f.Message().Properties != nil {
		t.Fatal("want no Properties section on a fresh outgoing message")
	}
	anns := f.Message().MessageAnnotations
	if len(anns) != 1 {
		t.Fatalf("want exactly the type annotation, got %+v", anns)
	}
	if v, ok := anns[annotationMsgType]; !ok || v != int64(BodyMessage) {
		t.Fatalf("want type annotation %d, got %+v", BodyMessage, anns)
	}
}

func TestOptionalSetterDefaultClearsFieldLeavesSectionAndSiblings(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	f.SetPriority(7)
	f.SetGroupId(strptr("g1"))

	f.SetPriority(defaultPriority)

	if f.Message().Header == nil {
		t.Fatal("Header section should still exist")
	}
	if f.Message().Header.Priority != nil {
		t.Fatal("priority field should be cleared")
	}
	if f.GetGroupId() == nil || *f.GetGroupId() != "g1" {
		t.Fatal("sibling Properties.groupId should be untouched by clearing priority")
	}

	// Setting a default on a message that never had the owning section
	// leaves it absent.
	fresh := NewForSend(fakeConnection{}, BodyMessage)
	fresh.SetGroupSequence(0)
	if fresh.Message().Properties != nil {
		t.Fatal("Properties section should remain absent")
	}
}

func TestPriorityClampsToZeroNine(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	f.SetPriority(99)
	if f.GetPriority() != 9 {
		t.Fatalf("want clamp to 9, got %d", f.GetPriority())
	}
	f.SetPriority(-5)
	if f.GetPriority() != 0 {
		t.Fatalf("want clamp to 0, got %d", f.GetPriority())
	}
}

func TestGroupSequenceSignedReinterpretRoundTrip(t *testing.T) {
	cases := []uint32{0x1, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF}
	for _, u := range cases {
		signed := int32(u)
		f := NewForSend(fakeConnection{}, BodyMessage)
		f.SetGroupSequence(signed)
		if signed == 0 {
			if f.GetGroupSequence() != 0 {
				t.Fatalf("u=%d: want 0 back", u)
			}
			continue
		}
		if got := f.GetGroupSequence(); got != signed {
			t.Fatalf("u=%d: got %d, want %d", u, got, signed)
		}
		if got := *f.Message().Properties.GroupSequence; got != u {
			t.Fatalf("u=%d: wire field got %d, want %d", u, got, u)
		}
	}
}

func TestOnSendTtlPrecedence(t *testing.T) {
	// override wins over producerTtl
	f := NewForSend(fakeConnection{}, BodyMessage)
	if err := f.SetTtl(5000); err != nil {
		t.Fatal(err)
	}
	f.OnSend(1000)
	if f.Message().Header.Ttl == nil || *f.Message().Header.Ttl != 5000 {
		t.Fatalf("want override ttl 5000, got %+v", f.Message().Header.Ttl)
	}

	// no override, positive producerTtl wins
	f2 := NewForSend(fakeConnection{}, BodyMessage)
	f2.OnSend(2500)
	if f2.Message().Header.Ttl == nil || *f2.Message().Header.Ttl != 2500 {
		t.Fatalf("want producer ttl 2500, got %+v", f2.Message().Header.Ttl)
	}

	// neither set: Header.ttl absent
	f3 := NewForSend(fakeConnection{}, BodyMessage)
	f3.OnSend(0)
	if f3.Message().Header.Ttl != nil {
		t.Fatalf("want no ttl, got %+v", f3.Message().Header.Ttl)
	}
}

func TestOnSendGuaranteesTypeAnnotationAndDurable(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyText)
	delete(f.Message().MessageAnnotations, annotationMsgType)
	f.Message().Header.Durable = nil

	f.OnSend(0)

	if v, ok := f.Message().MessageAnnotations[annotationMsgType]; !ok || v != int64(BodyText) {
		t.Fatal("onSend should guarantee the type annotation")
	}
	// durable was implicitly false (cleared field) before onSend re-asserts
	// the getter's current view of it, so it remains cleared here: onSend
	// re-asserts whatever GetDurable reports, it does not force true.
	if f.GetDurable() {
		t.Fatal("onSend re-asserts the current durable value, it does not force true")
	}
}

func TestDeliveryCountAndRedelivery(t *testing.T) {
	msg := wire.NewMessage()
	f := WrapIncoming(fakeConsumer{kind: destination.Queue}, msg)

	if f.GetRedelivered() {
		t.Fatal("fresh incoming message should not be redelivered")
	}
	if f.GetDeliveryCount() != 1 {
		t.Fatalf("want delivery count 1, got %d", f.GetDeliveryCount())
	}

	f.SetRedelivered(true)
	if !f.GetRedelivered() || f.GetDeliveryCount() != 2 {
		t.Fatalf("want redelivered with count 2, got redelivered=%v count=%d", f.GetRedelivered(), f.GetDeliveryCount())
	}

	f.SetRedelivered(true) // already redelivered: unchanged
	if f.GetDeliveryCount() != 2 {
		t.Fatalf("want unchanged count 2, got %d", f.GetDeliveryCount())
	}

	f.SetRedelivered(false)
	if f.GetRedelivered() || f.Message().Header.DeliveryCount != nil {
		t.Fatal("want delivery-count field cleared")
	}
}

func TestCorrelationIdApplicationVsStandard(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)

	if err := f.SetCorrelationId(strptr("myAppCorrelator")); err != nil {
		t.Fatal(err)
	}
	got, err := f.GetCorrelationId()
	if err != nil || got == nil || *got != "myAppCorrelator" {
		t.Fatalf("want app correlator verbatim, got %v err %v", got, err)
	}
	if v, ok := f.Message().MessageAnnotations[annotationAppCorrelationID]; !ok || v != true {
		t.Fatal("want app-correlation-id annotation set")
	}

	if err := f.SetCorrelationId(strptr("ID:msg-7")); err != nil {
		t.Fatal(err)
	}
	got, err = f.GetCorrelationId()
	if err != nil || got == nil || *got != "ID:msg-7" {
		t.Fatalf("want standard id encoding, got %v err %v", got, err)
	}
	if _, ok := f.Message().MessageAnnotations[annotationAppCorrelationID]; ok {
		t.Fatal("want app-correlation-id annotation cleared for a standard id")
	}
}

func TestMessageIdRoundTrip(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	if err := f.SetMessageId(strptr("ID:AMQP_UUID:6ba7b810-9dad-11d1-80b4-00c04fd430c8")); err != nil {
		t.Fatal(err)
	}
	got, err := f.GetMessageId()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != "ID:AMQP_UUID:6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Fatalf("got %v", got)
	}
}

func TestExpirationSynthesisIsMemoized(t *testing.T) {
	msg := wire.NewMessage()
	h := msg.EnsureHeader()
	ttl := uint32(60000)
	h.Ttl = &ttl

	f := WrapIncoming(fakeConsumer{kind: destination.Queue}, msg)
	first := f.GetExpiration()
	if first == 0 {
		t.Fatal("want synthesized expiration")
	}
	second := f.GetExpiration()
	if second != first {
		t.Fatalf("want memoized stable value, got %d then %d", first, second)
	}
}

func TestDestinationRoundTripViaAnnotation(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	d := destination.NewTopic("prices")
	f.SetDestination(&d)

	got := f.GetDestination()
	if got == nil || got.Kind != destination.Topic || got.Name != "prices" {
		t.Fatalf("got %+v", got)
	}
}

func TestSetPropertyNilKeyIsIllegalArgument(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	err := f.SetProperty(nil, "x")
	if err == nil {
		t.Fatal("want error for nil key")
	}
	fe, ok := err.(*Error)
	if !ok || fe.Kind() != IllegalArgument {
		t.Fatalf("want IllegalArgument, got %v", err)
	}
}

func TestCopyIsDeepAndIndependent(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	f.SetGroupId(strptr("g1"))

	clone := f.Copy()
	clone.SetGroupId(strptr("g2"))

	if f.GetGroupId() == nil || *f.GetGroupId() != "g1" {
		t.Fatal("original must be unaffected by mutation on the clone")
	}
	if clone.GetGroupId() == nil || *clone.GetGroupId() != "g2" {
		t.Fatal("clone should carry its own mutation")
	}
}

func TestCopyDeepCopiesMapBodyAndPropertyValues(t *testing.T) {
	mf := NewMapForSend(fakeConnection{})
	if err := mf.SetMapEntry("count", int64(1)); err != nil {
		t.Fatal(err)
	}
	key := "tags"
	if err := mf.SetProperty(&key, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	clone := &MapFacade{Facade: mf.Facade.Copy()}
	if err := clone.SetMapEntry("count", int64(2)); err != nil {
		t.Fatal(err)
	}
	clone.GetProperty(&key).([]byte)[0] = 99

	if v, _ := mf.GetMapEntry("count"); v != int64(1) {
		t.Fatalf("original map entry mutated by clone: got %v", v)
	}
	if orig := mf.GetProperty(&key).([]byte); orig[0] != 1 {
		t.Fatalf("original property bytes mutated by clone: got %v", orig)
	}
}

func TestClearBodyOnlyTouchesBody(t *testing.T) {
	f := NewForSend(fakeConnection{}, BodyMessage)
	f.SetGroupId(strptr("g1"))
	f.Message().Body = &wire.Body{Kind: wire.BodyData, Data: []byte("hi")}

	f.ClearBody()

	if f.Message().Body != nil {
		t.Fatal("want body cleared")
	}
	if f.GetGroupId() == nil || *f.GetGroupId() != "g1" {
		t.Fatal("clearBody must not touch Properties")
	}
}

func strptr(s string) *string { return &s }
