package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"planforge/internal/geometry"
	"planforge/internal/model"
	pg "planforge/internal/postgres"
	redis_client "planforge/internal/redis"
	"planforge/internal/service/storage"
	"planforge/internal/util"
	"planforge/internal/validate"
)

const PlanRedisKey = "plan"

// RoomSpatial represents one room of a plan with its spatial information
// for R-tree indexing
type RoomSpatial struct {
	PlanID string
	Ring   orb.Ring
	Room   *model.RoomMetrics
}

// Bounds implements the rtreego.Spatial interface
func (r *RoomSpatial) Bounds() rtreego.Rect {
	bound := geometry.BoundingBox(r.Ring)
	minX, minY := bound.Min[0], bound.Min[1]
	maxX, maxY := bound.Max[0], bound.Max[1]

	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{maxX - minX, maxY - minY},
	)

	return rect
}

// PlanService generates floor plans from design specifications and manages
// the generated plans: in-memory storage, per-room spatial index, and
// persistence through the background workers.
type PlanService struct {
	storage      storage.Storage[string, *model.Plan]
	spatialIndex *rtreego.Rtree
	indexMutex   sync.RWMutex
	initialized  bool
	initMutex    sync.RWMutex
}

var (
	planServiceInstance *PlanService
	planServiceOnce     sync.Once
)

// GetPlanService returns the singleton instance of the PlanService
func GetPlanService() *PlanService {
	planServiceOnce.Do(func() {
		planServiceInstance = &PlanService{
			storage:      storage.NewShardedMemoryStorage[string, *model.Plan](8, nil),
			spatialIndex: rtreego.NewTree(2, 25, 50),
		}
	})
	return planServiceInstance
}

// InitService initializes the service by loading plans from PostgreSQL and
// merging newer entries from Redis
func (s *PlanService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing PlanService...")
	startTime := time.Now()

	log.Println("Loading plans from PostgreSQL...")
	pgPlans, err := s.loadAllPlansFromPG()
	if err != nil {
		return fmt.Errorf("failed to load plans from PostgreSQL: %w", err)
	}
	log.Printf("Loaded %d plans from PostgreSQL in %v", len(pgPlans), time.Since(startTime))

	log.Println("Loading plan updates from Redis...")
	redisPlans, err := s.loadAllPlansFromRedis(ctx)
	if err != nil {
		return fmt.Errorf("failed to load plans from Redis: %w", err)
	}
	log.Printf("Loaded %d plan updates from Redis", len(redisPlans))

	mergedCount := s.mergePlansIntoMemory(pgPlans, redisPlans)
	log.Printf("Merged %d newer plans from Redis", mergedCount)

	s.rebuildSpatialIndex()

	log.Printf("Initialization complete: %d plans in memory, took %v",
		s.storage.Count(), time.Since(startTime))

	s.initialized = true
	return nil
}

// GeneratePlan validates the specification and synthesizes the primitives
// for one floor. Rooms are independent, so synthesis runs concurrently
// across them; the output keeps the per-room primitive order and the input
// room order. A validation failure aborts before any synthesis happens.
func (s *PlanService) GeneratePlan(ctx context.Context, spec *model.DesignSpec, level int, thickness float64) (*model.Plan, error) {
	if issues := validate.DesignSpec(spec); len(issues) > 0 {
		return nil, validate.Errors(issues)
	}

	floor := spec.FindFloor(level)
	if floor == nil {
		return nil, fmt.Errorf("floor level %d not found in specification", level)
	}
	if thickness <= 0 {
		thickness = geometry.DefaultWallThickness
	}

	startTime := time.Now()

	// Synthesize every room concurrently; each result slot keeps the
	// input room order.
	results := make([][]model.Primitive, len(floor.Rooms))
	g, gctx := errgroup.WithContext(ctx)
	for i := range floor.Rooms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			primitives, err := geometry.SynthesizeRoom(&floor.Rooms[i], thickness)
			if err != nil {
				return err
			}
			results[i] = primitives
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	plan := &model.Plan{
		ID:            util.ShortUUID(),
		Name:          spec.ProjectInfo.Name,
		FloorLevel:    level,
		WallThickness: thickness,
		UpdatedAt:     time.Now(),
		CreatedAt:     time.Now(),
	}

	for i := range floor.Rooms {
		room := &floor.Rooms[i]
		ring := geometry.CloseRing(room.Geometry.Ring())

		metrics := model.RoomMetrics{
			Name:      room.Name,
			Type:      room.Type,
			Ring:      ring,
			Area:      geometry.Area(ring),
			Perimeter: geometry.Perimeter(ring),
			Centroid:  geometry.Centroid(ring),
			Bounds:    geometry.BoundingBox(ring),
		}
		plan.Rooms = append(plan.Rooms, metrics)
		plan.TotalArea += metrics.Area
		plan.Primitives = append(plan.Primitives, results[i]...)
	}

	s.storage.Set(plan.ID, plan)
	s.indexPlanRooms(plan)

	// Write through to the cache ahead of the periodic flush
	if planJSON, err := json.Marshal(plan); err == nil {
		key := fmt.Sprintf("%s:%s", PlanRedisKey, plan.ID)
		if err := redis_client.Set(key, planJSON, 0); err != nil {
			log.Printf("Failed to cache plan %s in Redis: %v", plan.ID, err)
		}
	}

	log.Printf("Generated plan %s: %d rooms, %d primitives, %.2f m2 in %v",
		plan.ID, len(plan.Rooms), len(plan.Primitives), plan.TotalArea, time.Since(startTime))

	return plan, nil
}

// GetPlan returns a plan by ID, falling back to the Redis cache for plans
// written by another instance
func (s *PlanService) GetPlan(id string) (*model.Plan, bool) {
	if plan, exists := s.storage.Get(id); exists {
		return plan, true
	}

	data, err := redis_client.Get(fmt.Sprintf("%s:%s", PlanRedisKey, id))
	if err != nil {
		return nil, false
	}
	plan := &model.Plan{}
	if err := json.Unmarshal([]byte(data), plan); err != nil {
		log.Printf("Bad cached payload for plan %s: %v", id, err)
		return nil, false
	}

	s.storage.Set(id, plan)
	s.indexPlanRooms(plan)
	return plan, true
}

// ListPlans returns all plans currently in memory
func (s *PlanService) ListPlans() []*model.Plan {
	return s.storage.GetAllValues()
}

// DeletePlan removes a plan from memory, its rooms from the spatial index,
// and its Redis cache entry, and soft-deletes the PostgreSQL row so the
// plan does not resurface on the next InitService load
func (s *PlanService) DeletePlan(ctx context.Context, id string) bool {
	plan, exists := s.storage.Get(id)
	if !exists {
		return false
	}

	s.storage.Delete(id)
	s.removePlanRooms(plan)

	key := fmt.Sprintf("%s:%s", PlanRedisKey, id)
	if err := redis_client.Delete(key); err != nil {
		log.Printf("Failed to delete plan %s from Redis: %v", id, err)
	}

	if db := pg.GetDB(); db != nil {
		if result := db.Delete(&model.PlanPG{ID: id}); result.Error != nil {
			log.Printf("Failed to delete plan %s from PostgreSQL: %v", id, result.Error)
		}
	}
	return true
}

// RoomAtPoint returns the rooms of a plan containing the given point.
// Candidates come from the R-tree on bounding boxes; the precise
// point-in-polygon check (boundary counts as inside) filters them.
func (s *PlanService) RoomAtPoint(planID string, x, y float64) []*model.RoomMetrics {
	s.indexMutex.RLock()
	defer s.indexMutex.RUnlock()

	point := orb.Point{x, y}

	searchRect, err := rtreego.NewRect(
		rtreego.Point{x, y},
		[]float64{0.0001, 0.0001},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	spatialResults := s.spatialIndex.SearchIntersect(searchRect)

	var result []*model.RoomMetrics
	for _, item := range spatialResults {
		roomSpatial := item.(*RoomSpatial)
		if roomSpatial.PlanID != planID {
			continue
		}
		if geometry.ContainsPoint(roomSpatial.Ring, point) {
			result = append(result, roomSpatial.Room)
		}
	}
	return result
}

// indexPlanRooms inserts every room of the plan into the spatial index
func (s *PlanService) indexPlanRooms(plan *model.Plan) {
	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	for i := range plan.Rooms {
		room := &plan.Rooms[i]
		if geometry.IsDegenerate(room.Ring) {
			continue
		}
		s.spatialIndex.Insert(&RoomSpatial{
			PlanID: plan.ID,
			Ring:   room.Ring,
			Room:   room,
		})
	}
}

// removePlanRooms deletes the plan's rooms from the spatial index
func (s *PlanService) removePlanRooms(plan *model.Plan) {
	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	sameRoom := func(obj1, obj2 rtreego.Spatial) bool {
		spatial1, ok1 := obj1.(*RoomSpatial)
		spatial2, ok2 := obj2.(*RoomSpatial)
		return ok1 && ok2 && spatial1.PlanID == spatial2.PlanID &&
			spatial1.Room.Name == spatial2.Room.Name
	}

	for i := range plan.Rooms {
		room := &plan.Rooms[i]
		if geometry.IsDegenerate(room.Ring) {
			continue
		}
		s.spatialIndex.DeleteWithComparator(&RoomSpatial{
			PlanID: plan.ID,
			Ring:   room.Ring,
			Room:   room,
		}, sameRoom)
	}
}

// rebuildSpatialIndex reindexes the rooms of every plan in memory
func (s *PlanService) rebuildSpatialIndex() {
	s.indexMutex.Lock()
	s.spatialIndex = rtreego.NewTree(2, 25, 50)
	s.indexMutex.Unlock()

	s.storage.ForEach(func(id string, plan *model.Plan) bool {
		s.indexPlanRooms(plan)
		return true
	})
}

// loadAllPlansFromPG loads all plans from PostgreSQL
func (s *PlanService) loadAllPlansFromPG() ([]*model.Plan, error) {
	db := pg.GetDB()
	if db == nil {
		return nil, nil
	}

	var pgPlans []*model.PlanPG
	result := db.Find(&pgPlans)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*model.Plan, 0, len(pgPlans))
	for _, pgPlan := range pgPlans {
		plan, err := model.PlanFromPG(pgPlan)
		if err != nil {
			log.Printf("Skipping plan %s: bad payload: %v", pgPlan.ID, err)
			continue
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// loadAllPlansFromRedis loads all cached plans from Redis
func (s *PlanService) loadAllPlansFromRedis(ctx context.Context) (map[string]*model.Plan, error) {
	client := redis_client.GetClient()
	if client == nil {
		return make(map[string]*model.Plan), nil
	}

	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", PlanRedisKey)

	// Collect all plan keys
	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return make(map[string]*model.Plan), nil
	}

	// Retrieve all plans in a single operation
	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	plans := make(map[string]*model.Plan)
	for _, data := range jsonData {
		if data == nil {
			continue
		}

		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}

		plan := &model.Plan{}
		if err := json.Unmarshal([]byte(jsonStr), plan); err != nil {
			continue
		}
		plans[plan.ID] = plan
	}

	return plans, nil
}

// mergePlansIntoMemory merges plans from PostgreSQL and Redis into memory
// storage. Redis entries win when newer.
func (s *PlanService) mergePlansIntoMemory(pgPlans []*model.Plan, redisPlans map[string]*model.Plan) int {
	for _, pgPlan := range pgPlans {
		s.storage.Set(pgPlan.ID, pgPlan)
	}

	mergedCount := 0
	for id, redisPlan := range redisPlans {
		existing, exists := s.storage.Get(id)
		if !exists || redisPlan.UpdatedAt.After(existing.UpdatedAt) {
			if exists {
				redisPlan.CreatedAt = existing.CreatedAt
				redisPlan.DeletedAt = existing.DeletedAt
			}
			s.storage.Set(id, redisPlan)
			mergedCount++
		}
	}
	return mergedCount
}

// SaveDirtyPlansToRedis saves modified plans to Redis
func (s *PlanService) SaveDirtyPlansToRedis() error {
	dirtyPlans := s.storage.GetDirty()
	if len(dirtyPlans) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	if client == nil {
		return nil
	}
	ctx := context.Background()
	pipe := client.Pipeline()

	// Collect keys to clear flags after successful save
	keys := make([]string, 0, len(dirtyPlans))

	for id, plan := range dirtyPlans {
		planKey := fmt.Sprintf("%s:%s", PlanRedisKey, id)
		planJSON, err := json.Marshal(plan)
		if err != nil {
			return err
		}
		pipe.Set(ctx, planKey, planJSON, 0)
		keys = append(keys, id)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)

	log.Printf("Saved %d plans to Redis", len(dirtyPlans))
	return nil
}

// SaveAllPlansToPG saves all plans to PostgreSQL
func (s *PlanService) SaveAllPlansToPG() error {
	allPlans := s.storage.GetAllValues()
	if len(allPlans) == 0 {
		return nil
	}

	db := pg.GetDB()
	if db == nil {
		return nil
	}

	for _, plan := range allPlans {
		row, err := plan.ToPG()
		if err != nil {
			return fmt.Errorf("plan %s: %w", plan.ID, err)
		}
		if result := db.Save(row); result.Error != nil {
			return result.Error
		}
	}

	log.Printf("Saved %d plans to PostgreSQL", len(allPlans))
	return nil
}
