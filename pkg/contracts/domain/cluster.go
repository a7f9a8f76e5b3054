package domain

// NoiseCluster is the DBSCAN label for points that belong to no cluster
const NoiseCluster = -1

// ClusteredSensor is a sensor with its assigned cluster label
type ClusteredSensor struct {
	SensorName string  `json:"sensor_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Vacuum     float64 `json:"vacuum"`
	Cluster    int     `json:"cluster"`
}

// SensorCluster summarizes one spatial group of sensors
type SensorCluster struct {
	Label       int      `json:"label"`
	Sensors     []string `json:"sensors"`
	Size        int      `json:"size"`
	AvgVacuum   float64  `json:"avg_vacuum"`
	WorstVacuum float64  `json:"worst_vacuum"`
	CenterLat   float64  `json:"center_lat"`
	CenterLon   float64  `json:"center_lon"`
}
