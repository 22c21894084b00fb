package services

import (
	"sync"
	"time"

	"freight-matching-service/internal/domain"
)

var (
	atlanta  = domain.Location{Lat: 33.7490, Lng: -84.3880}
	savannah = domain.Location{Lat: 32.0835, Lng: -81.0998}
	miami    = domain.Location{Lat: 25.7617, Lng: -80.1918}
)

func ptr[T any](v T) *T { return &v }

func pkg(volume, weight float64, typ domain.CargoType) domain.Package {
	return domain.Package{Volume: volume, Weight: weight, Type: typ}
}

func order(id int, origin, destiny domain.Location, pkgs ...domain.Package) domain.Order {
	o := domain.Order{OrderID: id, Origin: ptr(origin), Destiny: ptr(destiny)}
	if len(pkgs) > 0 {
		o.Cargo = []domain.Cargo{{CargoID: id, OrderID: id, Packages: pkgs}}
	}
	return o
}

func corridor(id int) domain.Route {
	return domain.Route{
		RouteID: id,
		Origin:  ptr(atlanta),
		Destiny: ptr(savannah),
		Path:    []domain.Location{atlanta, savannah},
	}
}

func withOrders(r domain.Route, n int) domain.Route {
	for i := 0; i < n; i++ {
		r.Orders = append(r.Orders, domain.Order{OrderID: 1000 + i})
	}
	return r
}

func truck(id int, capacity float64) domain.Truck {
	return domain.Truck{TruckID: id, Capacity: capacity, Autonomy: 1500, Type: domain.TruckStandard}
}

type fakeRecorder struct {
	mu          sync.Mutex
	validations int
	kinds       []string
	batches     []int
	compliance  map[string]string
}

func (f *fakeRecorder) RecordValidation(_ bool, kinds []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validations++
	f.kinds = append(f.kinds, kinds...)
}

func (f *fakeRecorder) RecordBatch(orders int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, orders)
}

func (f *fakeRecorder) RecordCompliance(id string, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.compliance == nil {
		f.compliance = map[string]string{}
	}
	f.compliance[id] = status
}
