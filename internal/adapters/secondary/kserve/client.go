package kserve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"news-classifier-registry/internal/config"
	ports "news-classifier-registry/internal/core/ports/output"
)

var inferenceServiceGVR = schema.GroupVersionResource{
	Group:    "serving.kserve.io",
	Version:  "v1beta1",
	Resource: "inferenceservices",
}

type servingClient struct {
	client    dynamic.Interface
	enabled   bool
	defaultNS string
}

// NewServingClient builds the champion-endpoint sync adapter.
func NewServingClient(cfg *config.ServingConfig) (ports.ServingClient, error) {
	if !cfg.Enabled {
		return &servingClient{enabled: false}, nil
	}

	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	defaultNS := cfg.Namespace
	if defaultNS == "" {
		defaultNS = "model-serving"
	}

	return &servingClient{
		client:    client,
		enabled:   true,
		defaultNS: defaultNS,
	}, nil
}

func (c *servingClient) IsAvailable() bool {
	return c.enabled
}

// SyncChampion creates the champion InferenceService or repoints an
// existing one at the new storage URI.
func (c *servingClient) SyncChampion(ctx context.Context, endpoint *ports.ChampionEndpoint) error {
	namespace := endpoint.Namespace
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj := c.buildInferenceServiceCR(endpoint)

	_, err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Create(ctx, obj, metav1.CreateOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("create champion inferenceservice: %w", err)
	}

	existing, err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Get(ctx, endpoint.Name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("get champion inferenceservice: %w", err)
	}

	obj.SetResourceVersion(existing.GetResourceVersion())
	_, err = c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Update(ctx, obj, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("update champion inferenceservice: %w", err)
	}

	return nil
}

func (c *servingClient) GetStatus(ctx context.Context, namespace, name string) (*ports.EndpointStatus, error) {
	if namespace == "" {
		namespace = c.defaultNS
	}

	obj, err := c.client.Resource(inferenceServiceGVR).
		Namespace(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return &ports.EndpointStatus{Ready: false, Error: "endpoint not found"}, nil
		}
		return nil, fmt.Errorf("get champion inferenceservice: %w", err)
	}

	return parseStatus(obj), nil
}

func (c *servingClient) buildInferenceServiceCR(endpoint *ports.ChampionEndpoint) *unstructured.Unstructured {
	return &unstructured.Unstructured{
		Object: map[string]interface{}{
			"apiVersion": "serving.kserve.io/v1beta1",
			"kind":       "InferenceService",
			"metadata": map[string]interface{}{
				"name": endpoint.Name,
				"labels": map[string]interface{}{
					"newsregistry.ai/model":            endpoint.ModelName,
					"newsregistry.ai/champion-version": strconv.Itoa(endpoint.Version),
				},
			},
			"spec": map[string]interface{}{
				"predictor": map[string]interface{}{
					"model": map[string]interface{}{
						"storageUri": endpoint.StorageURI,
					},
				},
			},
		},
	}
}

func parseStatus(obj *unstructured.Unstructured) *ports.EndpointStatus {
	status := &ports.EndpointStatus{}

	statusMap, found, _ := unstructured.NestedMap(obj.Object, "status")
	if !found {
		return status
	}

	status.URL, _, _ = unstructured.NestedString(statusMap, "url")

	conditions, found, _ := unstructured.NestedSlice(statusMap, "conditions")
	if found {
		for _, cond := range conditions {
			condMap, ok := cond.(map[string]interface{})
			if !ok {
				continue
			}
			condType, _ := condMap["type"].(string)
			condStatus, _ := condMap["status"].(string)

			if condType == "Ready" {
				status.Ready = condStatus == "True"
				if condStatus == "False" {
					if msg, ok := condMap["message"].(string); ok {
						status.Error = msg
					}
				}
				break
			}
		}
	}

	return status
}

var _ ports.ServingClient = (*servingClient)(nil)
