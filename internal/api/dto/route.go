package dto

// Request body for POST /api/routes. Coordinate range and separation checks
// belong to the route service; binding only enforces presence.
type PointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ComputeRoutesRequest struct {
	Origin      *PointRequest `json:"origin" binding:"required"`
	Destination *PointRequest `json:"destination" binding:"required"`
}
