// Package scanner turns live Kubernetes workloads into engine jobs: each
// deployment's CPU footprint becomes a job sized against a hardware profile,
// so a day of cluster compute can be packed into low-carbon hours.
package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

// Deployments opt into scheduling hints via these annotations.
const (
	AnnotationDuration = "greenops.io/duration-hours"
	AnnotationBudget   = "greenops.io/carbon-budget-kg"
)

// Options controls how workloads are converted to jobs.
type Options struct {
	// Hardware is the catalog profile jobs are priced against.
	Hardware models.HardwareProfile

	// DefaultDurationHours applies when a deployment carries no duration
	// annotation.
	DefaultDurationHours float64

	// DefaultBudget applies when a deployment carries no budget annotation,
	// in kgCO2.
	DefaultBudget float64
}

type Scanner struct {
	clientset     *kubernetes.Clientset
	metricsClient *metricsv.Clientset
	opts          Options
}

// New builds a scanner from the local kubeconfig.
func New(opts Options) (*Scanner, error) {
	var kubeconfig string
	if home := homedir.HomeDir(); home != "" {
		kubeconfig = filepath.Join(home, ".kube", "config")
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	metricsClient, err := metricsv.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics client: %w", err)
	}

	return &Scanner{
		clientset:     clientset,
		metricsClient: metricsClient,
		opts:          opts,
	}, nil
}

// ListJobs converts the deployments in scope into jobs, one per deployment.
func (s *Scanner) ListJobs(ctx context.Context, namespace string, allNamespaces bool) ([]models.Job, error) {
	version, err := s.clientset.Discovery().ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}
	fmt.Printf("[INFO] Connected to cluster (version: %s)\n", version.GitVersion)

	namespaces := []string{namespace}
	if allNamespaces {
		nsList, err := s.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list namespaces: %w", err)
		}
		namespaces = []string{}
		for _, ns := range nsList.Items {
			namespaces = append(namespaces, ns.Name)
		}
		fmt.Printf("[INFO] Scanning %d namespaces\n", len(namespaces))
	} else {
		fmt.Printf("[INFO] Scanning namespace: %s\n", namespace)
	}

	var jobs []models.Job
	for _, ns := range namespaces {
		nsJobs, err := s.scanNamespace(ctx, ns)
		if err != nil {
			fmt.Printf("[WARN] Error scanning namespace %s: %v\n", ns, err)
			continue
		}
		jobs = append(jobs, nsJobs...)
	}
	return jobs, nil
}

func (s *Scanner) scanNamespace(ctx context.Context, namespace string) ([]models.Job, error) {
	deployments, err := s.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	// Measured CPU usage per workload, in cores. Falls back to requests when
	// metrics-server is unavailable.
	usage, usageOK := s.measuredUsage(ctx, namespace)

	var jobs []models.Job
	for _, deploy := range deployments.Items {
		replicas := int32(1)
		if deploy.Spec.Replicas != nil {
			replicas = *deploy.Spec.Replicas
		}
		if replicas == 0 {
			continue
		}

		cores := 0.0
		if usageOK {
			cores = usage[deploy.Name]
		}
		if cores == 0 {
			for _, container := range deploy.Spec.Template.Spec.Containers {
				if req, ok := container.Resources.Requests["cpu"]; ok {
					cores += req.AsApproximateFloat64()
				}
			}
			cores *= float64(replicas)
		}
		if cores == 0 {
			continue
		}

		utilization := cores / float64(s.opts.Hardware.Cores)
		if utilization > 1 {
			utilization = 1
		}

		jobs = append(jobs, models.Job{
			ID:            fmt.Sprintf("%s/%s", namespace, deploy.Name),
			Hardware:      s.opts.Hardware.Name,
			Utilization:   utilization,
			DurationHours: annotationFloat(deploy.Annotations, AnnotationDuration, s.opts.DefaultDurationHours),
			CarbonBudget:  annotationFloat(deploy.Annotations, AnnotationBudget, s.opts.DefaultBudget),
			SubmittedAt:   metav1.Now().Time,
		})
	}
	return jobs, nil
}

// measuredUsage sums live pod CPU usage per parent workload.
func (s *Scanner) measuredUsage(ctx context.Context, namespace string) (map[string]float64, bool) {
	podMetrics, err := s.metricsClient.MetricsV1beta1().PodMetricses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, false
	}

	usage := make(map[string]float64)
	for _, pm := range podMetrics.Items {
		workload := extractWorkloadName(pm.Name)
		for _, container := range pm.Containers {
			if cpu, ok := container.Usage["cpu"]; ok {
				usage[workload] += cpu.AsApproximateFloat64()
			}
		}
	}
	return usage, true
}

func annotationFloat(annotations map[string]string, key string, fallback float64) float64 {
	if raw, ok := annotations[key]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

// extractWorkloadName extracts workload name from pod name
// Handles formats like: "workload-name-7d9f8b-xyz" (Deployment) or "workload-name-0" (StatefulSet)
func extractWorkloadName(podName string) string {
	// Try StatefulSet pattern first (ends with -<number>)
	if len(podName) > 2 && podName[len(podName)-2] == '-' {
		lastChar := podName[len(podName)-1]
		if lastChar >= '0' && lastChar <= '9' {
			return podName[:len(podName)-2]
		}
	}

	// Try Deployment pattern (remove last two dash-separated segments)
	dashCount := 0
	for i := len(podName) - 1; i >= 0; i-- {
		if podName[i] == '-' {
			dashCount++
			if dashCount == 2 {
				return podName[:i]
			}
		}
	}

	return podName
}
