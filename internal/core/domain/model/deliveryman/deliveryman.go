package deliveryman

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrDeliverymanIsNotConstructed = errors.New("Deliveryman must be created via NewDeliveryman or RestoreDeliveryman")

// Deliveryman carries the performance statistics that order completions feed.
//
// Each bucket is nil until the first completion credits it. Buckets only grow;
// the weekly reset clears numberOfViewsPerWeek and nothing else.
type Deliveryman struct {
	id                   kernel.UUID
	name                 string
	phone                string
	buckets              map[BucketName]*Bucket
	numberOfViewsPerWeek int
	guard                guard.ConstructorGuard
}

// NewDeliveryman registers a deliveryman with empty statistics.
func NewDeliveryman(id kernel.UUID, name, phone string) (*Deliveryman, error) {
	d := &Deliveryman{
		buckets: make(map[BucketName]*Bucket, 3),
		guard:   guard.NewConstructorGuard(),
	}
	if err := errors.Join(d.setID(id), d.setName(name), d.setPhone(phone)); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDeliveryman rebuilds a persisted deliveryman. Nil buckets stay absent.
func RestoreDeliveryman(
	id kernel.UUID,
	name, phone string,
	category, category6, category10 *Bucket,
	numberOfViewsPerWeek int,
) (*Deliveryman, error) {
	d, err := NewDeliveryman(id, name, phone)
	if err != nil {
		return nil, err
	}
	if numberOfViewsPerWeek < 0 {
		return nil, errs.NewValueIsOutOfRangeError("numberOfViewsPerWeek", numberOfViewsPerWeek, 0, "unbounded")
	}

	for bucketName, b := range map[BucketName]*Bucket{Category: category, Category6: category6, Category10: category10} {
		if b != nil {
			restored := *b
			d.buckets[bucketName] = &restored
		}
	}
	d.numberOfViewsPerWeek = numberOfViewsPerWeek
	return d, nil
}

func (d *Deliveryman) Validate() error {
	if d == nil {
		return ErrDeliverymanIsNotConstructed
	}
	return d.guard.Validate(ErrDeliverymanIsNotConstructed)
}

func (d *Deliveryman) ID() kernel.UUID           { return d.id }
func (d *Deliveryman) Name() string              { return d.name }
func (d *Deliveryman) Phone() string             { return d.phone }
func (d *Deliveryman) NumberOfViewsPerWeek() int { return d.numberOfViewsPerWeek }

// Bucket returns a copy of the named bucket, or nil if it was never credited.
func (d *Deliveryman) Bucket(name BucketName) *Bucket {
	b, ok := d.buckets[name]
	if !ok {
		return nil
	}
	c := *b
	return &c
}

// Credit applies inc to its bucket, creating the bucket at zero first when absent.
// Repositories apply the same arithmetic as one atomic UPDATE.
func (d *Deliveryman) Credit(inc BucketIncrement) error {
	if err := inc.Validate(); err != nil {
		return err
	}
	current := Bucket{}
	if b, ok := d.buckets[inc.Bucket]; ok {
		current = *b
	}
	next := current.Add(inc)
	d.buckets[inc.Bucket] = &next
	return nil
}

// ResetWeek zeroes the weekly view counter.
func (d *Deliveryman) ResetWeek() {
	d.numberOfViewsPerWeek = 0
}

func (d *Deliveryman) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Deliveryman) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Deliveryman) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}
