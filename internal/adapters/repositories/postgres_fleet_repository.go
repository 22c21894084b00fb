package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
)

// Postgres-backed implementation of the SnapshotRepository port.
type PostgresFleetRepository struct{ DB *sql.DB }

func NewPostgresFleetRepository(db *sql.DB) *PostgresFleetRepository {
	return &PostgresFleetRepository{DB: db}
}

var _ ports.SnapshotRepository = (*PostgresFleetRepository)(nil)

// LoadSnapshot reads every truck, route and order inside one read-only
// transaction so the audit sees a consistent fleet.
func (r *PostgresFleetRepository) LoadSnapshot(ctx context.Context) (domain.FleetSnapshot, error) {
	if r.DB == nil {
		return domain.FleetSnapshot{}, errors.New("postgres fleet repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return domain.FleetSnapshot{}, fmt.Errorf("load snapshot: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	packages, err := loadPackages(ctx, tx)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}
	cargoByOrder, cargoByTruck, err := loadCargo(ctx, tx, packages)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}
	trucks, err := loadTrucks(ctx, tx, cargoByTruck)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}
	orders, err := loadOrders(ctx, tx, cargoByOrder)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}
	points, err := loadRoutePoints(ctx, tx)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}
	routes, err := loadRoutes(ctx, tx, points, orders)
	if err != nil {
		return domain.FleetSnapshot{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.FleetSnapshot{}, fmt.Errorf("load snapshot: commit tx: %w", err)
	}

	if len(trucks) == 0 && len(routes) == 0 && len(orders) == 0 {
		return domain.FleetSnapshot{}, ports.ErrSnapshotNotFound
	}
	return domain.FleetSnapshot{Orders: orders, Routes: routes, Trucks: trucks}, nil
}

func loadPackages(ctx context.Context, tx *sql.Tx) (map[int][]domain.Package, error) {
	query := `
	SELECT package_id, cargo_id, volume, weight, cargo_type
	FROM packages
	ORDER BY package_id;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query packages: %w", err)
	}
	defer rows.Close()

	out := map[int][]domain.Package{}
	for rows.Next() {
		var (
			p       domain.Package
			typeStr string
		)
		if err := rows.Scan(&p.PackageID, &p.CargoID, &p.Volume, &p.Weight, &typeStr); err != nil {
			return nil, fmt.Errorf("load snapshot: scan package row: %w", err)
		}
		if p.Type, err = domain.ParseCargoType(typeStr); err != nil {
			return nil, fmt.Errorf("load snapshot: package_id=%d: %w", p.PackageID, err)
		}
		out[p.CargoID] = append(out[p.CargoID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: iterate package rows: %w", err)
	}
	return out, nil
}

func loadCargo(ctx context.Context, tx *sql.Tx, packages map[int][]domain.Package) (map[int][]domain.Cargo, map[int][]domain.Cargo, error) {
	query := `
	SELECT cargo_id, order_id, truck_id
	FROM cargo
	ORDER BY cargo_id;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("load snapshot: query cargo: %w", err)
	}
	defer rows.Close()

	byOrder := map[int][]domain.Cargo{}
	byTruck := map[int][]domain.Cargo{}
	for rows.Next() {
		var (
			c       domain.Cargo
			truckID sql.NullInt64
		)
		if err := rows.Scan(&c.CargoID, &c.OrderID, &truckID); err != nil {
			return nil, nil, fmt.Errorf("load snapshot: scan cargo row: %w", err)
		}
		c.Packages = packages[c.CargoID]
		if truckID.Valid {
			id := int(truckID.Int64)
			c.TruckID = &id
			byTruck[id] = append(byTruck[id], c)
		}
		byOrder[c.OrderID] = append(byOrder[c.OrderID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("load snapshot: iterate cargo rows: %w", err)
	}
	return byOrder, byTruck, nil
}

func loadTrucks(ctx context.Context, tx *sql.Tx, cargo map[int][]domain.Cargo) ([]domain.Truck, error) {
	query := `
	SELECT truck_id, capacity, autonomy, truck_type
	FROM trucks
	ORDER BY truck_id;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query trucks: %w", err)
	}
	defer rows.Close()

	var out []domain.Truck
	for rows.Next() {
		var t domain.Truck
		if err := rows.Scan(&t.TruckID, &t.Capacity, &t.Autonomy, &t.Type); err != nil {
			return nil, fmt.Errorf("load snapshot: scan truck row: %w", err)
		}
		t.CargoLoads = cargo[t.TruckID]
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: iterate truck rows: %w", err)
	}
	return out, nil
}

func loadOrders(ctx context.Context, tx *sql.Tx, cargo map[int][]domain.Cargo) ([]domain.Order, error) {
	query := `
	SELECT order_id, client_id, route_id, origin_lat, origin_lng, destiny_lat, destiny_lng
	FROM orders
	ORDER BY order_id;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var (
			o                 domain.Order
			clientID, routeID sql.NullInt64
			origLat, origLng  sql.NullFloat64
			destLat, destLng  sql.NullFloat64
		)
		if err := rows.Scan(&o.OrderID, &clientID, &routeID, &origLat, &origLng, &destLat, &destLng); err != nil {
			return nil, fmt.Errorf("load snapshot: scan order row: %w", err)
		}
		o.ClientID = nullInt(clientID)
		o.RouteID = nullInt(routeID)
		o.Origin = nullLocation(origLat, origLng)
		o.Destiny = nullLocation(destLat, destLng)
		o.Cargo = cargo[o.OrderID]
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: iterate order rows: %w", err)
	}
	return out, nil
}

func loadRoutePoints(ctx context.Context, tx *sql.Tx) (map[int][]domain.Location, error) {
	query := `
	SELECT route_id, lat, lng, marked
	FROM route_points
	ORDER BY route_id, seq;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query route points: %w", err)
	}
	defer rows.Close()

	out := map[int][]domain.Location{}
	for rows.Next() {
		var (
			routeID int
			l       domain.Location
		)
		if err := rows.Scan(&routeID, &l.Lat, &l.Lng, &l.Marked); err != nil {
			return nil, fmt.Errorf("load snapshot: scan route point row: %w", err)
		}
		out[routeID] = append(out[routeID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: iterate route point rows: %w", err)
	}
	return out, nil
}

func loadRoutes(ctx context.Context, tx *sql.Tx, points map[int][]domain.Location, orders []domain.Order) ([]domain.Route, error) {
	query := `
	SELECT route_id, name, origin_lat, origin_lng, destiny_lat, destiny_lng, truck_id, profitability, contract
	FROM routes
	ORDER BY route_id;
	`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: query routes: %w", err)
	}
	defer rows.Close()

	assigned := map[int][]domain.Order{}
	for _, o := range orders {
		if o.RouteID != nil {
			assigned[*o.RouteID] = append(assigned[*o.RouteID], o)
		}
	}

	var out []domain.Route
	for rows.Next() {
		var (
			rt               domain.Route
			origLat, origLng sql.NullFloat64
			destLat, destLng sql.NullFloat64
			truckID          sql.NullInt64
		)
		if err := rows.Scan(&rt.RouteID, &rt.Name, &origLat, &origLng, &destLat, &destLng,
			&truckID, &rt.Profitability, &rt.Contract); err != nil {
			return nil, fmt.Errorf("load snapshot: scan route row: %w", err)
		}
		rt.Origin = nullLocation(origLat, origLng)
		rt.Destiny = nullLocation(destLat, destLng)
		rt.TruckID = nullInt(truckID)
		rt.Path = points[rt.RouteID]
		rt.Orders = assigned[rt.RouteID]
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: iterate route rows: %w", err)
	}
	return out, nil
}

// SaveSnapshot upserts every entity of the snapshot. Route paths are replaced.
func (r *PostgresFleetRepository) SaveSnapshot(ctx context.Context, snap domain.FleetSnapshot) error {
	if r.DB == nil {
		return errors.New("postgres fleet repository: DB is nil")
	}
	if err := validateSnapshotIDs(snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range snap.Trucks {
		query := `
		INSERT INTO trucks (truck_id, capacity, autonomy, truck_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (truck_id) DO UPDATE
		SET capacity = EXCLUDED.capacity, autonomy = EXCLUDED.autonomy, truck_type = EXCLUDED.truck_type;
		`
		if _, err := tx.ExecContext(ctx, query, t.TruckID, t.Capacity, t.Autonomy, t.Type); err != nil {
			return fmt.Errorf("save snapshot: insert truck_id=%d: %w", t.TruckID, err)
		}
	}

	orders := slices.Clone(snap.Orders)
	for _, rt := range snap.Routes {
		if err := saveRoute(ctx, tx, rt); err != nil {
			return err
		}
		for _, o := range rt.Orders {
			o.RouteID = &rt.RouteID
			orders = append(orders, o)
		}
	}

	for _, o := range orders {
		if err := saveOrder(ctx, tx, o); err != nil {
			return err
		}
	}

	// Cargo loaded on trucks but owned by orders saved above.
	for _, t := range snap.Trucks {
		for _, c := range t.CargoLoads {
			truckID := t.TruckID
			c.TruckID = &truckID
			if err := saveCargo(ctx, tx, c); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit tx: %w", err)
	}
	return nil
}

func saveRoute(ctx context.Context, tx *sql.Tx, rt domain.Route) error {
	query := `
	INSERT INTO routes (route_id, name, origin_lat, origin_lng, destiny_lat, destiny_lng, truck_id, profitability, contract)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (route_id) DO UPDATE
	SET name = EXCLUDED.name,
		origin_lat = EXCLUDED.origin_lat, origin_lng = EXCLUDED.origin_lng,
		destiny_lat = EXCLUDED.destiny_lat, destiny_lng = EXCLUDED.destiny_lng,
		truck_id = EXCLUDED.truck_id, profitability = EXCLUDED.profitability, contract = EXCLUDED.contract;
	`
	origLat, origLng := locationArgs(rt.Origin)
	destLat, destLng := locationArgs(rt.Destiny)
	if _, err := tx.ExecContext(ctx, query, rt.RouteID, rt.Name, origLat, origLng, destLat, destLng,
		intArg(rt.TruckID), rt.Profitability, rt.Contract); err != nil {
		return fmt.Errorf("save snapshot: insert route_id=%d: %w", rt.RouteID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_points WHERE route_id = $1;`, rt.RouteID); err != nil {
		return fmt.Errorf("save snapshot: clear path route_id=%d: %w", rt.RouteID, err)
	}
	for seq, p := range rt.Path {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO route_points (route_id, seq, lat, lng, marked) VALUES ($1, $2, $3, $4, $5);`,
			rt.RouteID, seq, p.Lat, p.Lng, p.Marked); err != nil {
			return fmt.Errorf("save snapshot: insert path point route_id=%d seq=%d: %w", rt.RouteID, seq, err)
		}
	}
	return nil
}

func saveOrder(ctx context.Context, tx *sql.Tx, o domain.Order) error {
	query := `
	INSERT INTO orders (order_id, client_id, route_id, origin_lat, origin_lng, destiny_lat, destiny_lng)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (order_id) DO UPDATE
	SET client_id = EXCLUDED.client_id, route_id = EXCLUDED.route_id,
		origin_lat = EXCLUDED.origin_lat, origin_lng = EXCLUDED.origin_lng,
		destiny_lat = EXCLUDED.destiny_lat, destiny_lng = EXCLUDED.destiny_lng;
	`
	origLat, origLng := locationArgs(o.Origin)
	destLat, destLng := locationArgs(o.Destiny)
	if _, err := tx.ExecContext(ctx, query, o.OrderID, intArg(o.ClientID), intArg(o.RouteID),
		origLat, origLng, destLat, destLng); err != nil {
		return fmt.Errorf("save snapshot: insert order_id=%d: %w", o.OrderID, err)
	}

	for _, c := range o.Cargo {
		c.OrderID = o.OrderID
		if err := saveCargo(ctx, tx, c); err != nil {
			return err
		}
	}
	return nil
}

// saveCargo keeps an existing truck assignment when c carries none.
func saveCargo(ctx context.Context, tx *sql.Tx, c domain.Cargo) error {
	query := `
	INSERT INTO cargo (cargo_id, order_id, truck_id)
	VALUES ($1, $2, $3)
	ON CONFLICT (cargo_id) DO UPDATE
	SET order_id = EXCLUDED.order_id, truck_id = COALESCE(EXCLUDED.truck_id, cargo.truck_id);
	`
	if _, err := tx.ExecContext(ctx, query, c.CargoID, c.OrderID, intArg(c.TruckID)); err != nil {
		return fmt.Errorf("save snapshot: insert cargo_id=%d: %w", c.CargoID, err)
	}

	for _, p := range c.Packages {
		query := `
		INSERT INTO packages (package_id, cargo_id, volume, weight, cargo_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (package_id) DO UPDATE
		SET cargo_id = EXCLUDED.cargo_id, volume = EXCLUDED.volume,
			weight = EXCLUDED.weight, cargo_type = EXCLUDED.cargo_type;
		`
		if _, err := tx.ExecContext(ctx, query, p.PackageID, c.CargoID, p.Volume, p.Weight, string(p.Type)); err != nil {
			return fmt.Errorf("save snapshot: insert package_id=%d: %w", p.PackageID, err)
		}
	}
	return nil
}

// validateSnapshotIDs rejects entities the tables could not key.
func validateSnapshotIDs(snap domain.FleetSnapshot) error {
	checkCargo := func(owner string, cs []domain.Cargo) error {
		for i, c := range cs {
			if c.CargoID <= 0 {
				return fmt.Errorf("%s: invalid cargo id at index %d: %d", owner, i+1, c.CargoID)
			}
			for j, p := range c.Packages {
				if p.PackageID <= 0 {
					return fmt.Errorf("%s: cargo %d: invalid package id at index %d: %d", owner, c.CargoID, j+1, p.PackageID)
				}
			}
		}
		return nil
	}

	for i, t := range snap.Trucks {
		if t.TruckID <= 0 {
			return fmt.Errorf("invalid truck id at index %d: %d", i+1, t.TruckID)
		}
		if err := checkCargo(fmt.Sprintf("truck %d", t.TruckID), t.CargoLoads); err != nil {
			return err
		}
	}

	orders := slices.Clone(snap.Orders)
	for i, rt := range snap.Routes {
		if rt.RouteID <= 0 {
			return fmt.Errorf("invalid route id at index %d: %d", i+1, rt.RouteID)
		}
		orders = append(orders, rt.Orders...)
	}

	for i, o := range orders {
		if o.OrderID <= 0 {
			return fmt.Errorf("invalid order id at index %d: %d", i+1, o.OrderID)
		}
		if err := checkCargo(fmt.Sprintf("order %d", o.OrderID), o.Cargo); err != nil {
			return err
		}
	}
	return nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullLocation(lat, lng sql.NullFloat64) *domain.Location {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Location{Lat: lat.Float64, Lng: lng.Float64}
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func locationArgs(l *domain.Location) (any, any) {
	if l == nil {
		return nil, nil
	}
	return l.Lat, l.Lng
}
