/*
Copyright 2025 Leadpool Authors.

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
package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/leadpool/leadpool/model"
)

func periodValidation(value interface{}) error {
	period, ok := value.(string)
	if !ok {
		return errors.New("invalid type for period")
	}
	if period == "" {
		return nil
	}
	return model.ValidatePeriod(period)
}

func (p *GeneratePool) ValidateGeneratePool() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Period, validation.By(periodValidation)),
	)
}

func (r *RunDistribution) ValidateRunDistribution() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Period, validation.By(periodValidation)),
	)
}

func (l *CreateLead) ValidateCreateLead() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Contact, validation.Required),
	)
}

func (b *BulkCreateLeads) ValidateBulkCreateLeads() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Leads, validation.Required, validation.Length(1, 0)),
	)
}

func (s *CreateSubscriber) ValidateCreateSubscriber() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.PlanTier, validation.In(
			model.TierStarter, model.TierStandard, model.TierProfessional, model.TierEnterprise,
		)),
		validation.Field(&s.Status, validation.In(
			model.StatusActive, model.StatusInactive, model.StatusCancelled,
		)),
	)
}

func (a *SequentialAssignment) ValidateSequentialAssignment() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Count, validation.Min(0)),
	)
}

func (s *CreateSubscriber) ToSubscriber() model.Subscriber {
	return model.Subscriber{
		SubscriberID: s.SubscriberID,
		PlanTier:     s.PlanTier,
		Status:       s.Status,
	}
}
