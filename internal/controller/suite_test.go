/*
Copyright 2026 Ben.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
	"github.com/benn447/uptime-kuma/declarative/internal/kumatest"
)

const namespace = "monitoring"

var (
	ctx       context.Context
	scheme    = runtime.NewScheme()
	srv       *kumatest.Server
	k8sClient client.Client
)

func TestControllers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Controller Suite")
}

var _ = BeforeSuite(func() {
	logf.SetLogger(zap.New(zap.WriteTo(GinkgoWriter), zap.UseDevMode(true)))

	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(monitoringv1alpha1.AddToScheme(scheme))
})

var _ = BeforeEach(func() {
	ctx = logf.IntoContext(context.Background(), logf.Log)
	srv = kumatest.NewServer()
	DeferCleanup(srv.Close)

	k8sClient = fake.NewClientBuilder().
		WithScheme(scheme).
		WithStatusSubresource(
			&monitoringv1alpha1.UptimeKumaConfig{},
			&monitoringv1alpha1.UptimeKumaGroup{},
			&monitoringv1alpha1.UptimeKumaMonitor{},
		).
		Build()
})

// request addresses an object in the test namespace
func request(name string) ctrl.Request {
	return ctrl.Request{NamespacedName: types.NamespacedName{Name: name, Namespace: namespace}}
}

// createConfig stores the API key secret and the default config pointing at
// the fake server
func createConfig() *monitoringv1alpha1.UptimeKumaConfig {
	GinkgoHelper()
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "kuma-api", Namespace: namespace},
		Data:       map[string][]byte{DefaultAPIKeyName: []byte("uk1_test")},
	}
	Expect(k8sClient.Create(ctx, secret)).To(Succeed())

	config := &monitoringv1alpha1.UptimeKumaConfig{
		ObjectMeta: metav1.ObjectMeta{Name: DefaultConfigName, Namespace: namespace},
		Spec: monitoringv1alpha1.UptimeKumaConfigSpec{
			APIURL:       srv.URL,
			APIKeySecret: monitoringv1alpha1.SecretReference{Name: "kuma-api"},
		},
	}
	Expect(k8sClient.Create(ctx, config)).To(Succeed())
	return config
}

// connectConfig creates the default config and reconciles it so dependent
// controllers see it connected
func connectConfig() {
	GinkgoHelper()
	createConfig()
	r := &UptimeKumaConfigReconciler{Client: k8sClient, Scheme: scheme}
	_, err := r.Reconcile(ctx, request(DefaultConfigName))
	Expect(err).NotTo(HaveOccurred())
}
