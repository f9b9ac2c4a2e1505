package gallery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	photosUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_photos_uploaded_total",
		Help: "Number of photos stored successfully.",
	})
	photosDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_photos_deleted_total",
		Help: "Number of photos deleted.",
	})
	uploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_upload_rejections_total",
		Help: "Uploads rejected by validation, by reason.",
	}, []string{"reason"})
	orphanedBlobs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_orphaned_blobs_total",
		Help: "Blobs left on storage because their deletion failed after the record was removed.",
	})
)
