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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	monitoringv1alpha1 "github.com/benn447/uptime-kuma/declarative/api/v1alpha1"
)

var _ = Describe("UptimeKumaConfig controller", func() {
	var r *UptimeKumaConfigReconciler

	BeforeEach(func() {
		r = &UptimeKumaConfigReconciler{Client: k8sClient, Scheme: scheme}
	})

	fetch := func() *monitoringv1alpha1.UptimeKumaConfig {
		GinkgoHelper()
		config := &monitoringv1alpha1.UptimeKumaConfig{}
		Expect(k8sClient.Get(ctx, client.ObjectKey{Name: DefaultConfigName, Namespace: namespace}, config)).To(Succeed())
		return config
	}

	It("marks the config connected", func() {
		createConfig()

		result, err := r.Reconcile(ctx, request(DefaultConfigName))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(Equal(RequeueInterval))

		config := fetch()
		Expect(config.Status.Connected).To(BeTrue())
		Expect(config.Status.Version).To(Equal("test"))
		Expect(config.Status.LastConnectionTime).NotTo(BeNil())
		Expect(config.Status.ObservedGeneration).To(Equal(config.Generation))
		cond := meta.FindStatusCondition(config.Status.Conditions, ConditionTypeReady)
		Expect(cond).NotTo(BeNil())
		Expect(cond.Status).To(Equal(metav1.ConditionTrue))
		Expect(cond.Reason).To(Equal(ReasonConnectionSuccess))
	})

	It("reports a missing secret", func() {
		config := &monitoringv1alpha1.UptimeKumaConfig{
			ObjectMeta: metav1.ObjectMeta{Name: DefaultConfigName, Namespace: namespace},
			Spec: monitoringv1alpha1.UptimeKumaConfigSpec{
				APIURL:       srv.URL,
				APIKeySecret: monitoringv1alpha1.SecretReference{Name: "absent"},
			},
		}
		Expect(k8sClient.Create(ctx, config)).To(Succeed())

		result, err := r.Reconcile(ctx, request(DefaultConfigName))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(Equal(RetryInterval))

		cond := meta.FindStatusCondition(fetch().Status.Conditions, ConditionTypeReady)
		Expect(cond.Status).To(Equal(metav1.ConditionFalse))
		Expect(cond.Reason).To(Equal(ReasonSecretNotFound))
	})

	It("reports a secret without the key", func() {
		createConfig()
		config := fetch()
		config.Spec.APIKeySecret.Key = "token"
		Expect(k8sClient.Update(ctx, config)).To(Succeed())

		_, err := r.Reconcile(ctx, request(DefaultConfigName))
		Expect(err).NotTo(HaveOccurred())

		cond := meta.FindStatusCondition(fetch().Status.Conditions, ConditionTypeReady)
		Expect(cond.Reason).To(Equal(ReasonInvalidSecret))
		Expect(cond.Message).To(ContainSubstring("does not contain key 'token'"))
	})

	It("reports an unreachable server", func() {
		createConfig()
		srv.Close()

		_, err := r.Reconcile(ctx, request(DefaultConfigName))
		Expect(err).NotTo(HaveOccurred())

		config := fetch()
		Expect(config.Status.Connected).To(BeFalse())
		cond := meta.FindStatusCondition(config.Status.Conditions, ConditionTypeReady)
		Expect(cond.Reason).To(Equal(ReasonConnectionFailed))
	})

	It("maps its API key secret back to the config", func() {
		createConfig()
		other := &monitoringv1alpha1.UptimeKumaConfig{
			ObjectMeta: metav1.ObjectMeta{Name: "staging", Namespace: namespace},
			Spec: monitoringv1alpha1.UptimeKumaConfigSpec{
				APIURL:       srv.URL,
				APIKeySecret: monitoringv1alpha1.SecretReference{Name: "staging-api"},
			},
		}
		Expect(k8sClient.Create(ctx, other)).To(Succeed())

		secret := &corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "kuma-api", Namespace: namespace}}
		Expect(r.configsForSecret(ctx, secret)).To(ConsistOf(request(DefaultConfigName)))
	})

	It("ignores a deleted config", func() {
		result, err := r.Reconcile(ctx, request("gone"))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.RequeueAfter).To(BeZero())
	})
})
